package search

// Result is one organic search result.
type Result struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

// ExtractedContent is the cleaned readable content of a page.
type ExtractedContent struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	Summary     string `json:"summary,omitempty"`
	WordCount   int    `json:"word_count"`
}
