package mock

import (
	"context"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

var _ bookmarkai.FolderService = (*FolderService)(nil)

// FolderService is a mock implementation of bookmarkai.FolderService.
type FolderService struct {
	CreateFolderFn   func(ctx context.Context, f *bookmarkai.Folder) error
	FindFolderByIDFn func(ctx context.Context, userID, id string) (*bookmarkai.Folder, error)
	FindFoldersFn    func(ctx context.Context, userID string) ([]*bookmarkai.Folder, error)
	UpdateFolderFn   func(ctx context.Context, userID, id string, upd bookmarkai.FolderUpdate) (*bookmarkai.Folder, error)
	DeleteFolderFn   func(ctx context.Context, userID, id string) error
}

func (s *FolderService) CreateFolder(ctx context.Context, f *bookmarkai.Folder) error {
	return s.CreateFolderFn(ctx, f)
}

func (s *FolderService) FindFolderByID(ctx context.Context, userID, id string) (*bookmarkai.Folder, error) {
	return s.FindFolderByIDFn(ctx, userID, id)
}

func (s *FolderService) FindFolders(ctx context.Context, userID string) ([]*bookmarkai.Folder, error) {
	return s.FindFoldersFn(ctx, userID)
}

func (s *FolderService) UpdateFolder(ctx context.Context, userID, id string, upd bookmarkai.FolderUpdate) (*bookmarkai.Folder, error) {
	return s.UpdateFolderFn(ctx, userID, id, upd)
}

func (s *FolderService) DeleteFolder(ctx context.Context, userID, id string) error {
	return s.DeleteFolderFn(ctx, userID, id)
}
