// Package goquery implements bookmarkai.Extractor using goquery to pull the
// title, description and main text out of fetched HTML.
package goquery

import (
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// DescriptionExcerptLength is the length of the content excerpt used when a
// page declares no description.
const DescriptionExcerptLength = 200

// removeSelector matches boilerplate removed before reading body text.
const removeSelector = `script, style, nav, header, footer, iframe, ` +
	`[class*="menu"], [class*="sidebar"], [class*="banner"], [class*="ad"]`

// contentSelectors are tried in order; the first that matches any element
// supplies the page text.
var contentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content",
	"#content",
	".post",
	".article",
	".post-content",
	".article-content",
}

// Ensure Extractor implements bookmarkai.Extractor at compile time.
var _ bookmarkai.Extractor = (*Extractor)(nil)

// Extractor extracts readable page content with CSS selectors.
type Extractor struct {
	maxLength int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxLength overrides bookmarkai.MaxContentLength.
func WithMaxLength(n int) Option {
	return func(e *Extractor) {
		e.maxLength = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxLength: bookmarkai.MaxContentLength}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and returns its title, description and main text.
func (e *Extractor) Extract(html, pageURL string) (*bookmarkai.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bookmarkai.Errorf(bookmarkai.EINVALID, "failed to parse HTML: %v", err)
	}

	// Metadata is read before boilerplate removal strips headers.
	title := firstNonEmpty(
		attr(doc, `meta[property="og:title"]`, "content"),
		doc.Find("title").First().Text(),
		doc.Find("h1").First().Text(),
		lastPathSegment(pageURL),
		"Untitled",
	)
	description := firstNonEmpty(
		attr(doc, `meta[property="og:description"]`, "content"),
		attr(doc, `meta[name="description"]`, "content"),
	)

	doc.Find(removeSelector).Remove()

	content := mainText(doc)
	if description == "" {
		description = excerpt(content, DescriptionExcerptLength)
	}

	return &bookmarkai.Page{
		Title:       title,
		Description: description,
		Content:     Truncate(content, e.maxLength),
	}, nil
}

// mainText returns the collapsed text of the first matching content
// selector, falling back to the whole body.
func mainText(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}

		var b strings.Builder
		sel.Each(func(_ int, s *goquery.Selection) {
			b.WriteString(s.Text())
			b.WriteByte(' ')
		})
		if text := collapseWhitespace(b.String()); text != "" {
			return text
		}
		break
	}
	return collapseWhitespace(doc.Find("body").Text())
}

// Truncate shortens s to at most max characters, cutting at the last word
// boundary. The result never ends inside a word, so text whose first max
// characters contain no space truncates to "".
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:max])
	if runes[max] == ' ' {
		return strings.TrimRight(cut, " ")
	}
	i := strings.LastIndex(cut, " ")
	if i < 0 {
		return ""
	}
	return strings.TrimRight(cut[:i], " ")
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return v
}

func lastPathSegment(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	p := strings.TrimSuffix(u.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
