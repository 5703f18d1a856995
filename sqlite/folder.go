package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Compile-time interface verification.
var _ bookmarkai.FolderService = (*FolderService)(nil)

// FolderService implements bookmarkai.FolderService using SQLite.
type FolderService struct {
	db *DB
}

// NewFolderService creates a new FolderService.
func NewFolderService(db *DB) *FolderService {
	return &FolderService{db: db}
}

const folderColumns = "id, user_id, name, description, parent_id, color, icon, created_at, updated_at"

// CreateFolder creates a new folder.
func (s *FolderService) CreateFolder(ctx context.Context, f *bookmarkai.Folder) error {
	if f.ParentID != nil && *f.ParentID == "" {
		f.ParentID = nil
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if f.ParentID != nil {
		if _, err := s.FindFolderByID(ctx, f.UserID, *f.ParentID); err != nil {
			return err
		}
	}

	f.ID = uuid.New().String()
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO folders (`+folderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.UserID, f.Name, f.Description, nullString(f.ParentID), f.Color, f.Icon,
		f.CreatedAt.Format(time.RFC3339), f.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindFolderByID retrieves a folder owned by the user.
func (s *FolderService) FindFolderByID(ctx context.Context, userID, id string) (*bookmarkai.Folder, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+folderColumns+" FROM folders WHERE id = ? AND user_id = ?", id, userID)

	f, err := scanFolder(row)
	if err == sql.ErrNoRows {
		return nil, bookmarkai.Errorf(bookmarkai.ENOTFOUND, "Folder not found")
	}
	return f, err
}

// FindFolders retrieves all of the user's folders ordered by name.
func (s *FolderService) FindFolders(ctx context.Context, userID string) ([]*bookmarkai.Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+folderColumns+" FROM folders WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []*bookmarkai.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// UpdateFolder updates a folder owned by the user. Moving a folder under
// itself or one of its descendants returns EINVALID.
func (s *FolderService) UpdateFolder(ctx context.Context, userID, id string, upd bookmarkai.FolderUpdate) (*bookmarkai.Folder, error) {
	f, err := s.FindFolderByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		f.Name = *upd.Name
	}
	if upd.Description != nil {
		f.Description = *upd.Description
	}
	if upd.Color != nil {
		f.Color = *upd.Color
	}
	if upd.Icon != nil {
		f.Icon = *upd.Icon
	}
	if upd.ParentID != nil {
		if *upd.ParentID == "" {
			f.ParentID = nil
		} else {
			parentID := *upd.ParentID
			f.ParentID = &parentID
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.ParentID != nil {
		if err := s.checkAncestry(ctx, userID, id, *f.ParentID); err != nil {
			return nil, err
		}
	}

	f.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE folders
		SET name = ?, description = ?, parent_id = ?, color = ?, icon = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, f.Name, f.Description, nullString(f.ParentID), f.Color, f.Icon,
		f.UpdatedAt.Format(time.RFC3339), id, userID)

	if err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFolder removes a folder, moving its bookmarks and subfolders to the root.
func (s *FolderService) DeleteFolder(ctx context.Context, userID, id string) error {
	if _, err := s.FindFolderByID(ctx, userID, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE bookmarks SET folder_id = NULL WHERE folder_id = ? AND user_id = ?", id, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE folders SET parent_id = NULL WHERE parent_id = ? AND user_id = ?", id, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM folders WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return err
	}

	return tx.Commit()
}

// checkAncestry walks up from parentID and fails if it reaches id.
func (s *FolderService) checkAncestry(ctx context.Context, userID, id, parentID string) error {
	seen := map[string]bool{}
	for cur := &parentID; cur != nil; {
		if *cur == id {
			return bookmarkai.Errorf(bookmarkai.EINVALID, "Folder cannot be moved into its own subfolder")
		}
		if seen[*cur] {
			return nil
		}
		seen[*cur] = true

		parent, err := s.FindFolderByID(ctx, userID, *cur)
		if err != nil {
			return err
		}
		cur = parent.ParentID
	}
	return nil
}

func scanFolder(row scanner) (*bookmarkai.Folder, error) {
	var f bookmarkai.Folder
	var parentID sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Description, &parentID, &f.Color, &f.Icon,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	f.ParentID = stringPtr(parentID)
	if err := parseTimestamps(createdAt, updatedAt, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}
