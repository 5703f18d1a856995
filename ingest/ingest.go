// Package ingest provides bookmark ingestion orchestration.
// It coordinates URL validation, fetching, extraction, AI analysis, tag
// normalization and storage of a single bookmark.
package ingest

import (
	"context"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Ensure Ingester implements bookmarkai.Ingester at compile time.
var _ bookmarkai.Ingester = (*Ingester)(nil)

// Ingester orchestrates the creation of enriched bookmarks.
type Ingester struct {
	Bookmarks bookmarkai.BookmarkService
	Fetcher   bookmarkai.Fetcher
	Extractor bookmarkai.Extractor
	Analyzer  bookmarkai.Analyzer
}

// CreateBookmark validates rawURL, rejects duplicates, then fetches and
// analyzes the page and stores the result. Fetch and analysis failures are
// recorded on the bookmark as a Warning instead of failing the call; only a
// storage failure is returned after validation.
func (i *Ingester) CreateBookmark(ctx context.Context, userID, rawURL, credential string) (*bookmarkai.Bookmark, error) {
	if userID == "" {
		return nil, bookmarkai.Errorf(bookmarkai.EINVALID, "user ID required")
	}
	if err := bookmarkai.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	url := bookmarkai.NormalizeURL(rawURL)

	exists, err := i.Bookmarks.BookmarkExists(ctx, userID, url)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, bookmarkai.Errorf(bookmarkai.ECONFLICT, "Bookmark already exists")
	}

	b := &bookmarkai.Bookmark{
		UserID:   userID,
		URL:      url,
		Category: bookmarkai.CategoryArticle,
	}

	page, err := i.fetch(ctx, url)
	if err != nil {
		b.Title = rawURL
		b.AISummary = bookmarkai.FetchErrorMessage(err)
		b.Tags = append([]string(nil), bookmarkai.FetchFailedTags...)
		b.Warning = bookmarkai.WarnFetchFailed
		return i.persist(ctx, b)
	}

	b.Title = page.Title
	if b.Title == "" {
		b.Title = rawURL
	}
	b.Description = page.Description
	b.ContentHash = ComputeHash(page.Content)

	analysis, err := i.Analyzer.Analyze(ctx, url, page.Content, credential)
	if err != nil {
		if bookmarkai.ErrorCode(err) == bookmarkai.EUNAUTHORIZED {
			b.AISummary = bookmarkai.SummaryCredentialMissing
			b.Warning = bookmarkai.WarnCredentialMissing
		} else {
			b.AISummary = bookmarkai.SummaryAnalysisFailed
			b.Warning = bookmarkai.WarnAnalysisFailed
		}
		b.Tags = append([]string(nil), bookmarkai.AnalysisFailedTags...)
		return i.persist(ctx, b)
	}

	vocabulary, err := i.Bookmarks.FindTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	b.AISummary = analysis.Summary
	b.Tags = bookmarkai.NormalizeTags(analysis.Tags, vocabulary)
	if c, ok := bookmarkai.ParseCategory(string(analysis.Category)); ok {
		b.Category = c
	}
	if analysis.Degraded {
		b.Warning = bookmarkai.WarnAnalysisFailed
	}

	return i.persist(ctx, b)
}

// fetch retrieves and extracts the page at url.
func (i *Ingester) fetch(ctx context.Context, url string) (*bookmarkai.Page, error) {
	html, err := i.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return i.Extractor.Extract(html, url)
}

func (i *Ingester) persist(ctx context.Context, b *bookmarkai.Bookmark) (*bookmarkai.Bookmark, error) {
	if err := i.Bookmarks.CreateBookmark(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
