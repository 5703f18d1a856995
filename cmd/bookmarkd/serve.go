package main

import (
	"fmt"

	bookmarkhttp "github.com/mmelton12/bookmark-ai/http"
	"github.com/mmelton12/bookmark-ai/jwt"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := bookmarkhttp.NewServer()
	s.Addr = c.Addr
	s.Logger = deps.Logger
	s.UserService = deps.Users
	s.BookmarkService = deps.Bookmarks
	s.FolderService = deps.Folders
	s.Ingester = deps.Ingester
	s.Chatter = deps.Chatter
	s.PasswordHasher = deps.Hasher
	s.TokenService = jwt.NewTokenService(c.JWTSecret)
	if deps.Metrics != nil {
		s.Metrics = deps.Metrics.Handler()
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("listening on %s: %w", c.Addr, err)
	}
	deps.Logger.Info("http server listening", "url", s.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("http server shutting down")
	return s.Close()
}
