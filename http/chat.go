package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

func (s *Server) registerChatRoutes(r chi.Router) {
	r.Post("/chat", s.handleChat)
}

// chatRequest carries the message and an optional credential that
// overrides the user's stored one.
type chatRequest struct {
	Message string `json:"message"`
	APIKey  string `json:"apiKey"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	credential := req.APIKey
	if credential == "" {
		credential = bookmarkai.UserFromContext(r.Context()).APIKey
	}

	reply, err := s.Chatter.Chat(r.Context(), req.Message, credential)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
