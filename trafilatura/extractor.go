// Package trafilatura implements bookmarkai.Extractor with go-trafilatura
// choosing the main content of a page.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/goquery"
)

// Ensure Extractor implements bookmarkai.Extractor at compile time.
var _ bookmarkai.Extractor = (*Extractor)(nil)

// Extractor replaces the content chosen by a base extractor with the text
// go-trafilatura identifies as the main article. Title and description come
// from the base extractor. When go-trafilatura finds nothing the base page
// is returned unchanged.
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

	opts := trafilatura.Options{EnableFallback: true}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(html), opts)
	if err != nil {
		return page, nil
	}
	if text := strings.Join(strings.Fields(result.ContentText), " "); text != "" {
		page.Content = goquery.Truncate(text, e.maxLength)
	}
	return page, nil
}
