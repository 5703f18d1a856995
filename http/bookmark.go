package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Pagination defaults for bookmark listings.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// MaxPage bounds the page number so the offset cannot overflow.
	MaxPage = 1_000_000
)

func (s *Server) registerBookmarkRoutes(r chi.Router) {
	r.Post("/bookmarks", s.handleCreateBookmark)
	r.Get("/bookmarks", s.handleListBookmarks)
	r.Get("/bookmarks/search", s.handleSearchBookmarks)
	r.Get("/bookmarks/tags", s.handleBookmarkTags)
	r.Put("/bookmarks/bulk", s.handleBulkUpdateBookmarks)
	r.Get("/bookmarks/{id}", s.handleGetBookmark)
	r.Put("/bookmarks/{id}", s.handleUpdateBookmark)
	r.Delete("/bookmarks/{id}", s.handleDeleteBookmark)
}

// bookmarkPage is a paginated listing of bookmarks.
type bookmarkPage struct {
	Data    []*bookmarkai.Bookmark `json:"data"`
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
	HasMore bool                   `json:"hasMore"`
}

func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	user := bookmarkai.UserFromContext(r.Context())
	b, err := s.Ingester.CreateBookmark(r.Context(), user.ID, req.URL, user.APIKey)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	s.findBookmarks(w, r, bookmarkai.BookmarkFilter{})
}

func (s *Server) handleSearchBookmarks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := bookmarkai.BookmarkFilter{Query: strings.TrimSpace(q.Get("query"))}
	for _, tag := range strings.Split(q.Get("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}
	if folderID, ok := q["folderId"]; ok {
		filter.FolderID = &folderID[0]
	}
	s.findBookmarks(w, r, filter)
}

// findBookmarks runs filter for the current user with page and limit taken
// from the query string.
func (s *Server) findBookmarks(w http.ResponseWriter, r *http.Request, filter bookmarkai.BookmarkFilter) {
	page := min(queryInt(r, "page", 1), MaxPage)
	limit := min(queryInt(r, "limit", DefaultPageLimit), MaxPageLimit)

	filter.UserID = bookmarkai.UserFromContext(r.Context()).ID
	filter.Offset = (page - 1) * limit
	filter.Limit = limit

	bookmarks, total, err := s.BookmarkService.FindBookmarks(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &bookmarkPage{
		Data:    bookmarks,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: total > filter.Offset+len(bookmarks),
	})
}

func (s *Server) handleBookmarkTags(w http.ResponseWriter, r *http.Request) {
	counts, err := s.BookmarkService.CountTags(r.Context(), bookmarkai.UserFromContext(r.Context()).ID)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleGetBookmark(w http.ResponseWriter, r *http.Request) {
	b, err := s.BookmarkService.FindBookmarkByID(r.Context(), bookmarkai.UserFromContext(r.Context()).ID, chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBookmark(w http.ResponseWriter, r *http.Request) {
	var upd bookmarkai.BookmarkUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.Error(w, r, err)
		return
	}

	b, err := s.updateBookmark(r, chi.URLParam(r, "id"), upd)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// bulkResult reports the outcome of one bookmark in a bulk update.
type bulkResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleBulkUpdateBookmarks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs    []string                  `json:"ids"`
		Update bookmarkai.BookmarkUpdate `json:"update"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if len(req.IDs) == 0 {
		s.Error(w, r, bookmarkai.Errorf(bookmarkai.EINVALID, "No bookmarks selected"))
		return
	}

	results := make([]bulkResult, 0, len(req.IDs))
	for _, id := range req.IDs {
		result := bulkResult{ID: id, Success: true}
		if _, err := s.updateBookmark(r, id, req.Update); err != nil {
			if bookmarkai.ErrorCode(err) == bookmarkai.EINTERNAL {
				s.Logger.Error("bulk update", "id", id, "err", err)
			}
			result.Success = false
			result.Message = bookmarkai.ErrorMessage(err)
		}
		results = append(results, result)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// updateBookmark re-normalizes replacement tags against the user's
// vocabulary before applying upd.
func (s *Server) updateBookmark(r *http.Request, id string, upd bookmarkai.BookmarkUpdate) (*bookmarkai.Bookmark, error) {
	userID := bookmarkai.UserFromContext(r.Context()).ID
	if upd.Tags != nil {
		vocabulary, err := s.BookmarkService.FindTags(r.Context(), userID)
		if err != nil {
			return nil, err
		}
		upd.Tags = bookmarkai.NormalizeTags(upd.Tags, vocabulary)
	}
	return s.BookmarkService.UpdateBookmark(r.Context(), userID, id, upd)
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.BookmarkService.DeleteBookmark(r.Context(), bookmarkai.UserFromContext(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bookmark removed"})
}

// queryInt parses a positive integer query parameter, returning def when
// it is missing or invalid.
func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}
