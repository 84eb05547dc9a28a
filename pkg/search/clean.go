package search

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	bareURLRe    = regexp.MustCompile(`https?://\S+`)
	sentenceRe   = regexp.MustCompile(`(?s)(.*?[.!?])(?:\s+|$)`)
)

// boilerplatePhrases are patterns stripped from extracted text: social
// prompts, call-to-action links, subscription nags, cookie notices, ad
// markers, and legal footers.
var boilerplatePhrases = []*regexp.Regexp{
	// Social and engagement
	regexp.MustCompile(`(?i)Share (this\s*)?(article|post|page)?\s*(on\s+\w+)?`),
	regexp.MustCompile(`(?i)Share on\s+(Facebook|Twitter|LinkedIn|X|Instagram|Pinterest|Reddit)`),
	regexp.MustCompile(`(?i)Follow us\s*(on\s+\w+)?`),
	regexp.MustCompile(`(?i)Join the conversation`),
	regexp.MustCompile(`(?i)(Leave|Add|Post) a comment`),
	regexp.MustCompile(`(?i)\d+\s*(likes?|shares?|comments?|reactions?)`),
	// Navigation prompts
	regexp.MustCompile(`(?i)Read more\s*(about this)?`),
	regexp.MustCompile(`(?i)Click here\s*(to\s+\w+)?`),
	regexp.MustCompile(`(?i)(Learn|Find out|Discover|See|View|Show) more`),
	regexp.MustCompile(`(?i)Continue reading`),
	regexp.MustCompile(`(?i)Skip to\s*(content|main|navigation)`),
	regexp.MustCompile(`(?i)Back to\s*(top|main|home)`),
	// Subscription
	regexp.MustCompile(`(?i)Subscribe\s*(to\s+\w+)?\s*(now)?`),
	regexp.MustCompile(`(?i)Sign up\s*(for\s+\w+)?\s*(now)?`),
	regexp.MustCompile(`(?i)Join\s*(our)?\s*(newsletter|list|community)`),
	regexp.MustCompile(`(?i)Never miss (a|an)\s+\w+`),
	// Cookies and legal
	regexp.MustCompile(`(?i)This site uses cookies`),
	regexp.MustCompile(`(?i)We use cookies\s*(to\s+\w+)?`),
	regexp.MustCompile(`(?i)Accept\s*(all)?\s*cookies`),
	regexp.MustCompile(`(?i)Privacy\s*(Policy|Notice|Settings)`),
	regexp.MustCompile(`(?i)Terms\s*(of\s*Service|and\s*Conditions|of\s*Use)`),
	regexp.MustCompile(`(?i)All rights reserved`),
	regexp.MustCompile(`(?i)Copyright\s*©?\s*\d{4}`),
	regexp.MustCompile(`©\s*\d{4}`),
	// Ads
	regexp.MustCompile(`(?i)Advertisement`),
	regexp.MustCompile(`(?i)Sponsored\s*(content|post|link)?`),
	regexp.MustCompile(`(?i)Promoted\s*(content|post)?`),
	// Relative timestamps
	regexp.MustCompile(`(?i)\d+\s+(minutes?|hours?|days?|weeks?|months?|years?)\s+ago`),
}

// cleanContent strips boilerplate phrases, bare URLs, short UI fragments,
// and excess whitespace from extracted text.
func cleanContent(text string) string {
	if text == "" {
		return ""
	}

	for _, re := range boilerplatePhrases {
		text = re.ReplaceAllString(text, "")
	}
	text = bareURLRe.ReplaceAllString(text, "")

	// Drop short standalone lines, which are almost always UI remnants
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) > 3 || len(line) > 30 {
			kept = append(kept, line)
			continue
		}
		if len(line) > 10 && looksLikeSentence(line) {
			kept = append(kept, line)
		}
	}
	text = strings.Join(kept, "\n")

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// looksLikeSentence reports whether a short line reads as prose rather
// than a button label.
func looksLikeSentence(line string) bool {
	first := line[0]
	last := line[len(line)-1]
	return first >= 'A' && first <= 'Z' && (last == '.' || last == '!' || last == '?')
}

// summarize returns the first n sentences of the text.
func summarize(text string, n int) string {
	matches := sentenceRe.FindAllStringSubmatch(text, n)
	if matches == nil {
		return text
	}

	sentences := make([]string, 0, len(matches))
	for _, m := range matches {
		sentences = append(sentences, strings.TrimSpace(m[1]))
	}
	return strings.Join(sentences, " ")
}
