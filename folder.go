package bookmarkai

import (
	"context"
	"sort"
	"time"
)

// Folder groups bookmarks. Folders nest through ParentID.
type Folder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    *string   `json:"parentId"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Subfolders is only populated by BuildFolderTree.
	Subfolders []*Folder `json:"subfolders,omitempty"`
}

// Validate returns an error if the folder contains invalid fields.
func (f *Folder) Validate() error {
	if f.UserID == "" {
		return Errorf(EINVALID, "folder user ID required")
	}
	if f.Name == "" {
		return Errorf(EINVALID, "Folder name is required")
	}
	if f.ID != "" && f.ParentID != nil && *f.ParentID == f.ID {
		return Errorf(EINVALID, "Folder cannot be its own parent")
	}
	return nil
}

// FolderService represents a service for managing folders.
type FolderService interface {
	// CreateFolder creates a new folder.
	CreateFolder(ctx context.Context, f *Folder) error

	// FindFolderByID retrieves a folder owned by the user.
	// Returns ENOTFOUND if the folder does not exist.
	FindFolderByID(ctx context.Context, userID, id string) (*Folder, error)

	// FindFolders retrieves all folders owned by the user as a flat list.
	FindFolders(ctx context.Context, userID string) ([]*Folder, error)

	// UpdateFolder updates a folder owned by the user.
	// Returns ENOTFOUND if the folder does not exist.
	UpdateFolder(ctx context.Context, userID, id string, upd FolderUpdate) (*Folder, error)

	// DeleteFolder removes a folder. Its bookmarks and subfolders move to the root.
	// Returns ENOTFOUND if the folder does not exist.
	DeleteFolder(ctx context.Context, userID, id string) error
}

// FolderUpdate represents fields that can be updated on a folder.
// A non-nil ParentID pointing at "" moves the folder back to the root.
type FolderUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

// BuildFolderTree arranges a flat folder list into root folders with nested
// Subfolders. Folders whose parent is missing from the list are treated as roots.
func BuildFolderTree(folders []*Folder) []*Folder {
	byID := make(map[string]*Folder, len(folders))
	for _, f := range folders {
		f.Subfolders = nil
		byID[f.ID] = f
	}

	var roots []*Folder
	for _, f := range folders {
		if f.ParentID != nil {
			if parent, ok := byID[*f.ParentID]; ok && parent != f {
				parent.Subfolders = append(parent.Subfolders, f)
				continue
			}
		}
		roots = append(roots, f)
	}

	sortFolders(roots)
	return roots
}

func sortFolders(folders []*Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})
	for _, f := range folders {
		sortFolders(f.Subfolders)
	}
}
