package mock

import (
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

var _ bookmarkai.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bookmarkai.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*bookmarkai.Page, error)
}

func (e *Extractor) Extract(html, pageURL string) (*bookmarkai.Page, error) {
	return e.ExtractFn(html, pageURL)
}
