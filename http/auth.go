package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

func (s *Server) registerAuthRoutes(r chi.Router) {
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/auth/me", s.handleMe)
		r.Put("/auth/apikey", s.handleUpdateAPIKey)
	})
}

// credentialsRequest is the body of signup and login requests.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// userResponse exposes whether a credential is configured without
// revealing it.
type userResponse struct {
	*bookmarkai.User
	HasAPIKey bool `json:"hasApiKey"`
}

func newUserResponse(u *bookmarkai.User) *userResponse {
	return &userResponse{User: u, HasAPIKey: u.HasAPIKey()}
}

// authResponse is returned by signup and login.
type authResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if len(req.Password) < bookmarkai.MinPasswordLength {
		s.Error(w, r, bookmarkai.Errorf(bookmarkai.EINVALID, "Password must be at least %d characters long", bookmarkai.MinPasswordLength))
		return
	}

	hash, err := s.PasswordHasher.Hash(req.Password)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	u := &bookmarkai.User{
		Email:        bookmarkai.NormalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	}
	if err := s.UserService.CreateUser(r.Context(), u); bookmarkai.ErrorCode(err) == bookmarkai.ECONFLICT {
		s.Error(w, r, bookmarkai.Errorf(bookmarkai.EINVALID, "User already exists"))
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeAuth(w, r, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		s.Error(w, r, bookmarkai.Errorf(bookmarkai.EINVALID, "Email and password are required"))
		return
	}

	u, err := s.UserService.FindUserByEmail(r.Context(), bookmarkai.NormalizeEmail(req.Email))
	if bookmarkai.ErrorCode(err) == bookmarkai.ENOTFOUND {
		s.Error(w, r, bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Invalid credentials"))
		return
	} else if err != nil {
		s.Error(w, r, err)
		return
	}

	if err := s.PasswordHasher.Compare(u.PasswordHash, req.Password); err != nil {
		s.Error(w, r, bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Invalid credentials"))
		return
	}

	s.writeAuth(w, r, http.StatusOK, u)
}

func (s *Server) writeAuth(w http.ResponseWriter, r *http.Request, status int, u *bookmarkai.User) {
	token, err := s.TokenService.Issue(u.ID)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, status, &authResponse{Token: token, User: newUserResponse(u)})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserResponse(bookmarkai.UserFromContext(r.Context())))
}

func (s *Server) handleUpdateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"apiKey"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	u, err := s.UserService.UpdateUser(r.Context(), bookmarkai.UserFromContext(r.Context()).ID, bookmarkai.UserUpdate{APIKey: &req.APIKey})
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(u))
}
