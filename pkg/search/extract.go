package search

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// DefaultMaxContentLength bounds extracted content size.
const DefaultMaxContentLength = 5000

// summaryThresholdWords is the word count above which a summary is
// generated alongside the full content.
const summaryThresholdWords = 100

// noiseTags never carry readable content and are dropped wholesale.
var noiseTags = []string{
	"script", "style", "nav", "header", "footer", "aside",
	"form", "input", "button", "select", "textarea",
	"svg", "canvas", "video", "audio", "iframe", "embed", "object",
	"noscript", "template", "dialog", "menu",
}

// boilerplateSelectors match chrome around the article: ads, cookie
// banners, social widgets, related-content rails. Matches are removed only
// when they look like chrome (short or link-dense), so a content container
// with an unlucky class name survives.
var boilerplateSelectors = []string{
	`[class*="advertisement"]`, `[class*="sponsored"]`, `[class*="promoted"]`,
	`[class*="cookie"]`, `[id*="cookie"]`, `[class*="gdpr"]`, `[class*="consent"]`,
	`[class*="social"]`, `[class*="share"]`,
	`[class*="sidebar"]`, `[id*="sidebar"]`, `[class*="breadcrumb"]`,
	`[class*="comment"]`, `[id*="comment"]`,
	`[class*="related"]`, `[class*="recommended"]`, `[class*="trending"]`,
	`[class*="newsletter"]`, `[class*="subscribe"]`, `[class*="signup"]`,
	`[class*="popup"]`, `[class*="modal"]`, `[class*="overlay"]`,
	`[class*="byline"]`, `[class*="timestamp"]`,
}

// contentSelectors locate the main content container, semantic tags first.
var contentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content", "#content",
	".main-content", "#main-content",
	".post-content", ".article-content", ".entry-content", ".page-content",
	".post-body", ".entry-body", ".article-body",
	`[itemprop="articleBody"]`,
	".story-body", ".story-content", ".news-content",
}

// Extract navigates to a URL and returns the cleaned readable content,
// bounded at maxLength characters. Long content gets a leading-sentence
// summary.
func (c *Client) Extract(page playwright.Page, pageURL string, maxLength int) (*ExtractedContent, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxContentLength
	}
	c.logger.Infof("Extracting content from: %s", pageURL)

	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}
	page.WaitForTimeout(2000)

	rawHTML, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	title, _ := page.Title()
	return extractContent(rawHTML, pageURL, title, maxLength)
}

// extractContent runs the readability pass over raw markup.
func extractContent(rawHTML, pageURL, title string, maxLength int) (*ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	meta := parseMeta(rawHTML)
	if title == "" {
		title = meta.title
	}

	body := doc.Find("body")
	stripNoise(body)

	content := cleanContent(findMainContent(body).Text())
	if len(content) > maxLength {
		content = truncateAtWord(content, maxLength)
	}

	wordCount := len(strings.Fields(content))
	var summary string
	if wordCount > summaryThresholdWords {
		summary = summarize(content, 3)
	}

	return &ExtractedContent{
		Title:       title,
		Description: meta.description,
		URL:         pageURL,
		Content:     content,
		Summary:     summary,
		WordCount:   wordCount,
	}, nil
}

// stripNoise removes non-content elements in place.
func stripNoise(body *goquery.Selection) {
	body.Find(strings.Join(noiseTags, ", ")).Remove()

	for _, selector := range boilerplateSelectors {
		body.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := s.Text()
			linkWords := len(strings.Fields(text))
			isShort := len(text) < 200
			isLinkOnly := s.Find("a").Length() > 0 && linkWords < 10
			if isShort || isLinkOnly {
				s.Remove()
			}
		})
	}
}

// findMainContent picks the best content container: a substantial semantic
// container when one exists, otherwise the highest-scoring div or section,
// with the whole body as last resort.
func findMainContent(body *goquery.Selection) *goquery.Selection {
	var best *goquery.Selection
	bestLength := 0

	for _, selector := range contentSelectors {
		el := body.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if length := len(el.Text()); length > bestLength && length > 500 {
			best = el
			bestLength = length
		}
	}
	if best != nil {
		return best
	}

	var bestScore float64
	body.Find("div, section").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		textLength := len(text)
		if textLength < 300 {
			return
		}

		paragraphs := s.Find("p").Length()
		links := s.Find("a").Length()
		linkDensity := float64(textLength)
		if links > 0 {
			linkDensity = float64(textLength) / float64(links)
		}
		score := float64(textLength)*0.5 + float64(paragraphs)*100 + linkDensity*0.3

		if score <= bestScore {
			return
		}

		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		if looksLikeChrome(class+" "+id) && paragraphs <= 3 {
			return
		}
		bestScore = score
		best = s
	})
	if best != nil {
		return best
	}
	return body
}

// looksLikeChrome reports whether a class/id string suggests navigation
// rather than content.
func looksLikeChrome(attrs string) bool {
	attrs = strings.ToLower(attrs)
	for _, marker := range []string{"nav", "menu", "sidebar", "header", "footer", "comment", "related", "meta"} {
		if strings.Contains(attrs, marker) {
			return true
		}
	}
	return false
}

// truncateAtWord cuts text at the last word boundary within max and marks
// the cut.
func truncateAtWord(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
