package bookmarkai

import (
	"context"
	"time"
)

// Category is the coarse classification of a bookmarked page.
type Category string

// Category constants.
const (
	CategoryArticle  Category = "Article"
	CategoryVideo    Category = "Video"
	CategoryResearch Category = "Research"
)

// ParseCategory returns the category named exactly by s.
// Returns false if s is not one of Article, Video or Research.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategoryArticle, CategoryVideo, CategoryResearch:
		return c, true
	}
	return "", false
}

// Bookmark represents a saved URL enriched with extracted and AI-derived metadata.
type Bookmark struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AISummary   string    `json:"aiSummary"`
	Tags        []string  `json:"tags"`
	Category    Category  `json:"category"`
	FolderID    *string   `json:"folderId"`
	IsFavorite  bool      `json:"isFavorite"`
	ContentHash string    `json:"contentHash,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Warning is set when a pipeline stage degraded instead of succeeding.
	Warning string `json:"warning,omitempty"`
}

// Validate returns an error if the bookmark contains invalid fields.
func (b *Bookmark) Validate() error {
	if b.UserID == "" {
		return Errorf(EINVALID, "bookmark user ID required")
	}
	if b.URL == "" {
		return Errorf(EINVALID, "bookmark URL required")
	}
	if _, ok := ParseCategory(string(b.Category)); !ok {
		return Errorf(EINVALID, "invalid bookmark category %q", b.Category)
	}
	return nil
}

// Degraded reports whether any ingestion stage fell back to placeholder content.
func (b *Bookmark) Degraded() bool {
	return b.Warning != ""
}

// BookmarkService represents a service for managing bookmarks.
type BookmarkService interface {
	// BookmarkExists reports whether the user already has a bookmark for the
	// normalized URL.
	BookmarkExists(ctx context.Context, userID, url string) (bool, error)

	// CreateBookmark persists a new bookmark and assigns its ID and timestamps.
	// Returns ECONFLICT if the user already has a bookmark for the URL.
	CreateBookmark(ctx context.Context, b *Bookmark) error

	// FindBookmarkByID retrieves a bookmark owned by the user.
	// Returns ENOTFOUND if the bookmark does not exist.
	FindBookmarkByID(ctx context.Context, userID, id string) (*Bookmark, error)

	// FindBookmarks retrieves bookmarks matching the filter along with the
	// total number of matches ignoring Offset and Limit.
	FindBookmarks(ctx context.Context, filter BookmarkFilter) ([]*Bookmark, int, error)

	// UpdateBookmark applies the update to a bookmark owned by the user.
	// Returns ENOTFOUND if the bookmark does not exist.
	UpdateBookmark(ctx context.Context, userID, id string, upd BookmarkUpdate) (*Bookmark, error)

	// DeleteBookmark permanently removes a bookmark owned by the user.
	// Returns ENOTFOUND if the bookmark does not exist.
	DeleteBookmark(ctx context.Context, userID, id string) error

	// FindTags returns the distinct tags the user has applied to any bookmark.
	FindTags(ctx context.Context, userID string) ([]string, error)

	// CountTags returns tag usage counts for the user, most used first.
	CountTags(ctx context.Context, userID string) ([]TagCount, error)
}

// BookmarkFilter represents a filter for FindBookmarks.
type BookmarkFilter struct {
	UserID   string  `json:"userId"`
	FolderID *string `json:"folderId"`

	// Tags matches bookmarks carrying any of the listed tags.
	Tags []string `json:"tags"`

	// Query matches title, description, summary and URL substrings.
	Query string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BookmarkUpdate represents fields that can be updated on a bookmark.
// A non-nil FolderID pointing at "" moves the bookmark back to the root.
type BookmarkUpdate struct {
	FolderID   *string   `json:"folderId"`
	IsFavorite *bool     `json:"isFavorite"`
	Category   *Category `json:"category"`
	Tags       []string  `json:"tags"`
}

// TagCount is the number of bookmarks a user has tagged with Name.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Ingester creates bookmarks by fetching and analyzing the target page.
type Ingester interface {
	// CreateBookmark ingests rawURL for the user. Fetch and analysis failures
	// never fail the call; they produce a bookmark with Warning set.
	// Returns EINVALID for a malformed URL and ECONFLICT for a duplicate.
	CreateBookmark(ctx context.Context, userID, rawURL, credential string) (*Bookmark, error)
}
