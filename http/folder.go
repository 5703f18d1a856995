package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

func (s *Server) registerFolderRoutes(r chi.Router) {
	r.Get("/folders", s.handleFolderTree)
	r.Post("/folders", s.handleCreateFolder)
	r.Get("/folders/{id}", s.handleGetFolder)
	r.Put("/folders/{id}", s.handleUpdateFolder)
	r.Delete("/folders/{id}", s.handleDeleteFolder)
}

func (s *Server) handleFolderTree(w http.ResponseWriter, r *http.Request) {
	folders, err := s.FolderService.FindFolders(r.Context(), bookmarkai.UserFromContext(r.Context()).ID)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	tree := bookmarkai.BuildFolderTree(folders)
	if tree == nil {
		tree = []*bookmarkai.Folder{}
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var f bookmarkai.Folder
	if err := decodeJSON(r, &f); err != nil {
		s.Error(w, r, err)
		return
	}
	f.ID = ""
	f.UserID = bookmarkai.UserFromContext(r.Context()).ID
	f.Subfolders = nil

	if err := s.FolderService.CreateFolder(r.Context(), &f); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &f)
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	f, err := s.FolderService.FindFolderByID(r.Context(), bookmarkai.UserFromContext(r.Context()).ID, chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleUpdateFolder(w http.ResponseWriter, r *http.Request) {
	var upd bookmarkai.FolderUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.Error(w, r, err)
		return
	}

	f, err := s.FolderService.UpdateFolder(r.Context(), bookmarkai.UserFromContext(r.Context()).ID, chi.URLParam(r, "id"), upd)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.FolderService.DeleteFolder(r.Context(), bookmarkai.UserFromContext(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Folder removed"})
}
