package search

import (
	"strings"

	"golang.org/x/net/html"
)

// pageMeta is the document metadata read before the readability pass.
type pageMeta struct {
	title       string
	description string
}

// parseMeta pulls the title and meta description out of raw markup with a
// plain node walk; it never fails, returning empty fields on bad input.
func parseMeta(rawHTML string) pageMeta {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return pageMeta{}
	}
	return pageMeta{
		title:       extractTitle(doc),
		description: extractMetaDescription(doc),
	}
}

// extractTitle extracts the page title from the document.
func extractTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}

// extractMetaDescription extracts the meta description from the document.
func extractMetaDescription(doc *html.Node) string {
	var description string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription {
				description = strings.TrimSpace(content)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if description != "" {
				return
			}
		}
	}
	traverse(doc)
	return description
}
