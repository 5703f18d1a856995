// Package readability implements bookmarkai.Extractor with go-readability
// choosing the main content of a page.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/goquery"
)

// Ensure Extractor implements bookmarkai.Extractor at compile time.
var _ bookmarkai.Extractor = (*Extractor)(nil)

// Extractor replaces the content chosen by a base extractor with the
// article text found by go-readability.
type Extractor struct {
	base      bookmarkai.Extractor
	maxLength int
}

// NewExtractor creates a new Extractor on top of base.
func NewExtractor(base bookmarkai.Extractor) *Extractor {
	return &Extractor{base: base, maxLength: bookmarkai.MaxContentLength}
}

// Extract processes raw HTML fetched from pageURL.
func (e *Extractor) Extract(html, pageURL string) (*bookmarkai.Page, error) {
	page, err := e.base.Extract(html, pageURL)
	if err != nil {
		return nil, err
	}

	u, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return page, nil
	}
	if text := strings.Join(strings.Fields(article.TextContent), " "); text != "" {
		page.Content = goquery.Truncate(text, e.maxLength)
	}
	return page, nil
}
