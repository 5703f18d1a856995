package mock

import (
	"context"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

var _ bookmarkai.BookmarkService = (*BookmarkService)(nil)

// BookmarkService is a mock implementation of bookmarkai.BookmarkService.
type BookmarkService struct {
	BookmarkExistsFn   func(ctx context.Context, userID, url string) (bool, error)
	CreateBookmarkFn   func(ctx context.Context, b *bookmarkai.Bookmark) error
	FindBookmarkByIDFn func(ctx context.Context, userID, id string) (*bookmarkai.Bookmark, error)
	FindBookmarksFn    func(ctx context.Context, filter bookmarkai.BookmarkFilter) ([]*bookmarkai.Bookmark, int, error)
	UpdateBookmarkFn   func(ctx context.Context, userID, id string, upd bookmarkai.BookmarkUpdate) (*bookmarkai.Bookmark, error)
	DeleteBookmarkFn   func(ctx context.Context, userID, id string) error
	FindTagsFn         func(ctx context.Context, userID string) ([]string, error)
	CountTagsFn        func(ctx context.Context, userID string) ([]bookmarkai.TagCount, error)
}

func (s *BookmarkService) BookmarkExists(ctx context.Context, userID, url string) (bool, error) {
	return s.BookmarkExistsFn(ctx, userID, url)
}

func (s *BookmarkService) CreateBookmark(ctx context.Context, b *bookmarkai.Bookmark) error {
	return s.CreateBookmarkFn(ctx, b)
}

func (s *BookmarkService) FindBookmarkByID(ctx context.Context, userID, id string) (*bookmarkai.Bookmark, error) {
	return s.FindBookmarkByIDFn(ctx, userID, id)
}

func (s *BookmarkService) FindBookmarks(ctx context.Context, filter bookmarkai.BookmarkFilter) ([]*bookmarkai.Bookmark, int, error) {
	return s.FindBookmarksFn(ctx, filter)
}

func (s *BookmarkService) UpdateBookmark(ctx context.Context, userID, id string, upd bookmarkai.BookmarkUpdate) (*bookmarkai.Bookmark, error) {
	return s.UpdateBookmarkFn(ctx, userID, id, upd)
}

func (s *BookmarkService) DeleteBookmark(ctx context.Context, userID, id string) error {
	return s.DeleteBookmarkFn(ctx, userID, id)
}

func (s *BookmarkService) FindTags(ctx context.Context, userID string) ([]string, error) {
	return s.FindTagsFn(ctx, userID)
}

func (s *BookmarkService) CountTags(ctx context.Context, userID string) ([]bookmarkai.TagCount, error) {
	return s.CountTagsFn(ctx, userID)
}

var _ bookmarkai.Ingester = (*Ingester)(nil)

// Ingester is a mock implementation of bookmarkai.Ingester.
type Ingester struct {
	CreateBookmarkFn func(ctx context.Context, userID, rawURL, credential string) (*bookmarkai.Bookmark, error)
}

func (i *Ingester) CreateBookmark(ctx context.Context, userID, rawURL, credential string) (*bookmarkai.Bookmark, error) {
	return i.CreateBookmarkFn(ctx, userID, rawURL, credential)
}
