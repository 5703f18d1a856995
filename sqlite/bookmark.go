package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Compile-time interface verification.
var _ bookmarkai.BookmarkService = (*BookmarkService)(nil)

// BookmarkService implements bookmarkai.BookmarkService using SQLite.
// Tags are stored in bookmark_tags in their original order.
type BookmarkService struct {
	db *DB
}

// NewBookmarkService creates a new BookmarkService.
func NewBookmarkService(db *DB) *BookmarkService {
	return &BookmarkService{db: db}
}

const bookmarkColumns = `id, user_id, url, title, description, ai_summary, category, folder_id,
	is_favorite, content_hash, warning, created_at, updated_at`

// BookmarkExists reports whether the user already has a bookmark for url.
func (s *BookmarkService) BookmarkExists(ctx context.Context, userID, url string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookmarks WHERE user_id = ? AND url = ?", userID, url).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateBookmark creates a new bookmark and its tags in one transaction.
// The (user_id, url) unique constraint turns a concurrent duplicate insert
// into ECONFLICT.
func (s *BookmarkService) CreateBookmark(ctx context.Context, b *bookmarkai.Bookmark) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.checkFolder(ctx, b.UserID, b.FolderID); err != nil {
		return err
	}

	b.ID = uuid.New().String()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Tags == nil {
		b.Tags = []string{}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookmarks (`+bookmarkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.UserID, b.URL, b.Title, b.Description, b.AISummary, string(b.Category), nullString(b.FolderID),
		b.IsFavorite, b.ContentHash, b.Warning,
		b.CreatedAt.Format(time.RFC3339), b.UpdatedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return bookmarkai.Errorf(bookmarkai.ECONFLICT, "Bookmark already exists")
	}
	if err != nil {
		return err
	}

	if err := insertTags(ctx, tx, b.ID, b.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// FindBookmarkByID retrieves a bookmark owned by the user.
func (s *BookmarkService) FindBookmarkByID(ctx context.Context, userID, id string) (*bookmarkai.Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE id = ? AND user_id = ?", id, userID)

	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, bookmarkai.Errorf(bookmarkai.ENOTFOUND, "Bookmark not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, []*bookmarkai.Bookmark{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// FindBookmarks retrieves bookmarks matching the filter, newest first,
// along with the total number of matches.
func (s *BookmarkService) FindBookmarks(ctx context.Context, filter bookmarkai.BookmarkFilter) ([]*bookmarkai.Bookmark, int, error) {
	var where strings.Builder
	var args []any

	where.WriteString(" WHERE user_id = ?")
	args = append(args, filter.UserID)

	if filter.FolderID != nil {
		if *filter.FolderID == "" {
			where.WriteString(" AND folder_id IS NULL")
		} else {
			where.WriteString(" AND folder_id = ?")
			args = append(args, *filter.FolderID)
		}
	}
	if len(filter.Tags) > 0 {
		where.WriteString(" AND id IN (SELECT bookmark_id FROM bookmark_tags WHERE tag IN (" + placeholders(len(filter.Tags)) + "))")
		for _, tag := range filter.Tags {
			args = append(args, tag)
		}
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		where.WriteString(` AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'` +
			` OR ai_summary LIKE ? ESCAPE '\' OR url LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(q) + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarks"+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var query strings.Builder
	query.WriteString("SELECT " + bookmarkColumns + " FROM bookmarks")
	query.WriteString(where.String())
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookmarks := []*bookmarkai.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, 0, err
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := s.attachTags(ctx, bookmarks); err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}

// UpdateBookmark applies upd to a bookmark owned by the user.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, userID, id string, upd bookmarkai.BookmarkUpdate) (*bookmarkai.Bookmark, error) {
	b, err := s.FindBookmarkByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.FolderID != nil {
		if *upd.FolderID == "" {
			b.FolderID = nil
		} else {
			folderID := *upd.FolderID
			b.FolderID = &folderID
		}
		if err := s.checkFolder(ctx, userID, b.FolderID); err != nil {
			return nil, err
		}
	}
	if upd.IsFavorite != nil {
		b.IsFavorite = *upd.IsFavorite
	}
	if upd.Category != nil {
		b.Category = *upd.Category
	}
	if upd.Tags != nil {
		b.Tags = upd.Tags
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	b.UpdatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		UPDATE bookmarks
		SET folder_id = ?, is_favorite = ?, category = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, nullString(b.FolderID), b.IsFavorite, string(b.Category), b.UpdatedAt.Format(time.RFC3339), id, userID)
	if err != nil {
		return nil, err
	}

	if upd.Tags != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM bookmark_tags WHERE bookmark_id = ?", id); err != nil {
			return nil, err
		}
		if err := insertTags(ctx, tx, id, b.Tags); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBookmark permanently removes a bookmark owned by the user.
func (s *BookmarkService) DeleteBookmark(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return bookmarkai.Errorf(bookmarkai.ENOTFOUND, "Bookmark not found")
	}

	return nil
}

// FindTags returns the user's distinct tags in alphabetical order.
func (s *BookmarkService) FindTags(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT t.tag
		FROM bookmark_tags t
		JOIN bookmarks b ON b.id = t.bookmark_id
		WHERE b.user_id = ?
		ORDER BY t.tag
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// CountTags returns tag usage counts, most used first, ties by name.
func (s *BookmarkService) CountTags(ctx context.Context, userID string) ([]bookmarkai.TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.tag, COUNT(*) AS n
		FROM bookmark_tags t
		JOIN bookmarks b ON b.id = t.bookmark_id
		WHERE b.user_id = ?
		GROUP BY t.tag
		ORDER BY n DESC, t.tag ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []bookmarkai.TagCount{}
	for rows.Next() {
		var tc bookmarkai.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// checkFolder returns ENOTFOUND unless folderID is nil or names a folder
// owned by the user.
func (s *BookmarkService) checkFolder(ctx context.Context, userID string, folderID *string) error {
	if folderID == nil || *folderID == "" {
		return nil
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM folders WHERE id = ? AND user_id = ?", *folderID, userID).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return bookmarkai.Errorf(bookmarkai.ENOTFOUND, "Folder not found")
	}
	return nil
}

// attachTags loads tags for bookmarks with a single query.
func (s *BookmarkService) attachTags(ctx context.Context, bookmarks []*bookmarkai.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	byID := make(map[string]*bookmarkai.Bookmark, len(bookmarks))
	args := make([]any, 0, len(bookmarks))
	for _, b := range bookmarks {
		b.Tags = []string{}
		byID[b.ID] = b
		args = append(args, b.ID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT bookmark_id, tag FROM bookmark_tags
		WHERE bookmark_id IN (`+placeholders(len(args))+`)
		ORDER BY bookmark_id, position
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return err
		}
		if b, ok := byID[id]; ok {
			b.Tags = append(b.Tags, tag)
		}
	}
	return rows.Err()
}

func insertTags(ctx context.Context, tx *sql.Tx, bookmarkID string, tags []string) error {
	for i, tag := range tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bookmark_tags (bookmark_id, tag, position) VALUES (?, ?, ?)
			ON CONFLICT (bookmark_id, tag) DO NOTHING
		`, bookmarkID, tag, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row scanner) (*bookmarkai.Bookmark, error) {
	var b bookmarkai.Bookmark
	var category, createdAt, updatedAt string
	var folderID sql.NullString

	if err := row.Scan(&b.ID, &b.UserID, &b.URL, &b.Title, &b.Description, &b.AISummary, &category, &folderID,
		&b.IsFavorite, &b.ContentHash, &b.Warning, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	b.Category = bookmarkai.Category(category)
	b.FolderID = stringPtr(folderID)
	if err := parseTimestamps(createdAt, updatedAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
