package bookmarkai

// MaxContentLength is the maximum number of characters of page text kept
// after extraction.
const MaxContentLength = 5000

// Page holds the readable parts of a fetched HTML page.
type Page struct {
	// Title falls back through og:title, <title>, the first <h1> and the last
	// URL path segment before becoming "Untitled".
	Title string

	// Description falls back through og:description and meta description
	// before becoming an excerpt of Content.
	Description string

	// Content is the main body text with whitespace collapsed, truncated on a
	// word boundary to at most MaxContentLength characters.
	Content string
}

// Extractor extracts the readable parts of an HTML page, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL.
	Extract(html, pageURL string) (*Page, error)
}
