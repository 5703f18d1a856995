package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is closed.
const ShutdownTimeout = 5 * time.Second

// Server serves the JSON API. Services are assigned to the exported fields
// before Open is called.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address, e.g. ":8080".
	Addr string

	Logger *slog.Logger

	UserService     bookmarkai.UserService
	BookmarkService bookmarkai.BookmarkService
	FolderService   bookmarkai.FolderService
	Ingester        bookmarkai.Ingester
	Chatter         bookmarkai.Chatter
	PasswordHasher  bookmarkai.PasswordHasher
	TokenService    bookmarkai.TokenService

	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewServer returns a Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		router: chi.NewRouter(),
		Logger: slog.New(slog.DiscardHandler),
	}
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Ingestion fetches a page and waits on the AI provider.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.accessLog)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/metrics", s.handleMetrics)

	s.router.Route("/api", func(r chi.Router) {
		s.registerAuthRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			s.registerBookmarkRoutes(r)
			s.registerFolderRoutes(r)
			s.registerChatRoutes(r)
		})
	})

	return s
}

// Open binds Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.Metrics == nil {
		http.NotFound(w, r)
		return
	}
	s.Metrics.ServeHTTP(w, r)
}

// authenticate resolves the bearer token to a user and stores it on the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			s.Error(w, r, bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Not authorized, no token"))
			return
		}

		userID, err := s.TokenService.Verify(strings.TrimSpace(token))
		if err != nil {
			s.Error(w, r, err)
			return
		}

		user, err := s.UserService.FindUserByID(r.Context(), userID)
		if bookmarkai.ErrorCode(err) == bookmarkai.ENOTFOUND {
			s.Error(w, r, bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Token is not valid"))
			return
		} else if err != nil {
			s.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(bookmarkai.NewContextWithUser(r.Context(), user)))
	})
}

// statusWriter captures status code and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// accessLog logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := &statusWriter{ResponseWriter: w}
		defer func(begin time.Time) {
			s.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"bytes", ww.bytes,
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return bookmarkai.Errorf(bookmarkai.EINVALID, "Invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
