package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultsStructured(t *testing.T) {
	page := `<html><body><div id="results">
		<div class="snippet">
			<a href="https://example.com/go"><div class="title">Go Programming</div></a>
			<p>Learn the Go programming language.</p>
		</div>
		<div class="snippet">
			<a href="https://example.org/rust"><div class="title">Rust Book</div></a>
			<p>The Rust programming language book.</p>
		</div>
	</div></body></html>`

	results, err := parseResults(page, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Go Programming", results[0].Title)
	assert.Equal(t, "https://example.com/go", results[0].URL)
	assert.Equal(t, "Learn the Go programming language.", results[0].Snippet)
	assert.Equal(t, 1, results[0].Position)

	assert.Equal(t, "Rust Book", results[1].Title)
	assert.Equal(t, 2, results[1].Position)
}

func TestParseResultsDeduplicates(t *testing.T) {
	page := `<html><body><div id="results">
		<div class="snippet"><a href="https://example.com/a">First Result Here</a></div>
		<div class="snippet"><a href="https://example.com/a">Duplicate Of First</a></div>
		<div class="snippet"><a href="https://example.com/b">Second Result Here</a></div>
	</div></body></html>`

	results, err := parseResults(page, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://example.com/a", results[0].URL)
	assert.Equal(t, "https://example.com/b", results[1].URL)
}

func TestParseResultsRespectsCount(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><div id="results">`)
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, `<div class="snippet"><a href="https://example.com/%d">Result number %d</a></div>`, i, i)
	}
	b.WriteString(`</div></body></html>`)

	results, err := parseResults(b.String(), 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestParseResultsLinkFallback(t *testing.T) {
	// No recognized result containers; harvest external links instead
	page := `<html><body>
		<a href="https://search.brave.com/settings">Settings page link</a>
		<a href="https://example.com/article">A long enough article title</a>
		<a href="https://example.org/other">Another interesting page here</a>
		<a href="https://example.net/x">tiny</a>
	</body></html>`

	results, err := parseResults(page, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://example.com/article", results[0].URL)
	assert.Equal(t, "A long enough article title", results[0].Title)
	assert.Equal(t, "https://example.org/other", results[1].URL)
}

func TestParseResultsSkipsInternalLinks(t *testing.T) {
	page := `<html><body><div id="results">
		<div class="snippet"><a href="https://imgs.search.brave.com/thumb.png">Thumbnail Image Link</a></div>
		<div class="snippet"><a href="https://example.com/real">The Real Search Result</a></div>
	</div></body></html>`

	results, err := parseResults(page, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.com/real", results[0].URL)
}

func TestParseResultsEmptyPage(t *testing.T) {
	results, err := parseResults("<html><body></body></html>", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIsInternalLink(t *testing.T) {
	assert.True(t, isInternalLink("https://search.brave.com/search?q=x"))
	assert.True(t, isInternalLink("https://account.brave.com/login"))
	assert.False(t, isInternalLink("https://example.com/brave-article"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
}
