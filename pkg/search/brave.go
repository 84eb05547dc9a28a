package search

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/VishnuSuresh2000/brave-scraper-mcp/pkg/logging"
)

// BraveSearchURL is the search endpoint scraped for organic results.
const BraveSearchURL = "https://search.brave.com/search"

// DefaultResultCount is how many results a search returns when the caller
// does not say.
const DefaultResultCount = 10

// Client scrapes Brave Search and extracts page content through a live
// browser page, so results reflect the fully rendered DOM.
type Client struct {
	logger *logging.Logger
}

// NewClient creates a search client.
func NewClient(logger *logging.Logger) *Client {
	return &Client{logger: logger}
}

// Search navigates the page to Brave Search and scrapes up to count
// organic results from the rendered markup.
func (c *Client) Search(page playwright.Page, query string, count int) ([]Result, error) {
	if count <= 0 {
		count = DefaultResultCount
	}
	c.logger.Infof("Searching Brave for: %s (count=%d)", query, count)

	searchURL := fmt.Sprintf("%s?q=%s", BraveSearchURL, url.QueryEscape(query))
	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to navigate to search page: %w", err)
	}

	// The results page renders client-side; give it a moment, then wait
	// for external links to show up
	page.WaitForTimeout(3000)
	if _, err := page.WaitForSelector(
		`a[href^='https://www.'], a[href^='https://en.'], a[href^='http']`,
		playwright.PageWaitForSelectorOptions{Timeout: playwright.Float(20000)},
	); err != nil {
		c.logger.Warnf("Could not find expected search result selectors: %v", err)
	}

	content, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read search page content: %w", err)
	}

	results, err := parseResults(content, count)
	if err != nil {
		return nil, err
	}
	c.logger.Infof("Found %d search results", len(results))
	return results, nil
}

// resultContainerSelectors locate structured result blocks, most specific
// first.
var resultContainerSelectors = []string{
	"#results .snippet",
	".snippet",
	`div[data-loc="main"] > div > div`,
	"main article",
	"article[data-loc]",
	".search-result",
	".result-item",
	`[data-component="search-result"]`,
}

// parseResults extracts organic results from the rendered search markup.
// Structured result blocks are preferred; when the page layout is not
// recognized it falls back to harvesting external links.
func parseResults(rawHTML string, count int) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}

	var containers *goquery.Selection
	for _, selector := range resultContainerSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			containers = found
			break
		}
	}

	results := make([]Result, 0, count)
	seen := make(map[string]bool)

	if containers != nil {
		containers.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if len(results) >= count {
				return false
			}
			if r, ok := resultFromContainer(s); ok && !seen[r.URL] {
				seen[r.URL] = true
				r.Position = len(results) + 1
				results = append(results, r)
			}
			return true
		})
	}

	if len(results) == 0 {
		doc.Find(`a[href^="https://"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if len(results) >= count {
				return false
			}
			href, _ := s.Attr("href")
			text := strings.TrimSpace(s.Text())
			if href == "" || len(text) < 10 || seen[href] || isInternalLink(href) {
				return true
			}
			seen[href] = true
			results = append(results, Result{
				Title:    truncate(text, 200),
				URL:      href,
				Position: len(results) + 1,
			})
			return true
		})
	}

	return results, nil
}

// resultFromContainer pulls title, url, and snippet from one result block.
func resultFromContainer(s *goquery.Selection) (Result, bool) {
	link := s.Find("a.l1").First()
	if link.Length() == 0 {
		link = s.Find(`a[href^="https://"], a[href^="http://"]`).First()
	}
	if link.Length() == 0 {
		link = s.Find("a").First()
	}

	href, _ := link.Attr("href")
	if href == "" || !strings.HasPrefix(href, "http") || isInternalLink(href) {
		return Result{}, false
	}

	title := strings.TrimSpace(link.Find(".title").First().Text())
	if title == "" {
		title = strings.TrimSpace(s.Find(`h2, h3, [class*="title"]`).First().Text())
	}
	if title == "" {
		title = strings.TrimSpace(link.Text())
	}
	if title == "" {
		return Result{}, false
	}

	snippet := strings.TrimSpace(
		s.Find(`p, [class*="description"], [class*="snippet"], [data-loc="snippet"]`).First().Text())

	return Result{
		Title:   truncate(title, 200),
		URL:     href,
		Snippet: truncate(snippet, 500),
	}, true
}

// isInternalLink filters Brave navigation and asset links out of results.
func isInternalLink(href string) bool {
	return strings.Contains(href, "search.brave.com") ||
		strings.Contains(href, "brave.com/") ||
		strings.Contains(href, "imgs.search.brave.com") ||
		strings.Contains(href, "account.brave.com")
}

// truncate bounds a string without splitting past max bytes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
