package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanContentStripsBoilerplate(t *testing.T) {
	text := strings.Join([]string{
		"The actual article body explains the topic in a fair amount of depth and detail.",
		"Share on Facebook",
		"Subscribe to our newsletter now",
		"We use cookies to improve your experience",
		"Copyright 2024 Example Corp",
		"A second substantive paragraph continues the discussion with more information.",
	}, "\n")

	got := cleanContent(text)

	assert.Contains(t, got, "actual article body")
	assert.Contains(t, got, "second substantive paragraph")
	assert.NotContains(t, got, "Share on Facebook")
	assert.NotContains(t, got, "Subscribe")
	assert.NotContains(t, got, "cookies")
	assert.NotContains(t, got, "Copyright")
}

func TestCleanContentStripsBareURLs(t *testing.T) {
	got := cleanContent("Read the details over at https://example.com/deep/link for more information on this.")
	assert.NotContains(t, got, "https://example.com")
	assert.Contains(t, got, "Read the details")
}

func TestCleanContentDropsShortUILines(t *testing.T) {
	text := strings.Join([]string{
		"Menu",
		"OK",
		"This sentence is long enough to be kept in the cleaned output as real prose.",
		"Short but real.",
	}, "\n")

	got := cleanContent(text)

	assert.NotContains(t, got, "Menu")
	assert.NotContains(t, got, "OK")
	assert.Contains(t, got, "long enough to be kept")
	assert.Contains(t, got, "Short but real.")
}

func TestCleanContentEmpty(t *testing.T) {
	assert.Equal(t, "", cleanContent(""))
	assert.Equal(t, "", cleanContent("   \n  \n"))
}

func TestCleanContentCollapsesWhitespace(t *testing.T) {
	got := cleanContent("Plenty   of\t\tspace   between these words but still one substantial line overall.")
	assert.NotContains(t, got, "  ")
}

func TestSummarize(t *testing.T) {
	text := "First sentence here. Second one follows! Third asks a question? Fourth is dropped."
	got := summarize(text, 3)
	assert.Equal(t, "First sentence here. Second one follows! Third asks a question?", got)
}

func TestSummarizeNoSentences(t *testing.T) {
	text := "no terminal punctuation at all"
	assert.Equal(t, text, summarize(text, 3))
}

func TestLooksLikeSentence(t *testing.T) {
	assert.True(t, looksLikeSentence("Short but real."))
	assert.False(t, looksLikeSentence("lowercase start."))
	assert.False(t, looksLikeSentence("No terminal punctuation"))
}
