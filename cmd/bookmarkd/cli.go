package main

import (
	"context"
	"io"
	"log/slog"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Users     bookmarkai.UserService
	Bookmarks bookmarkai.BookmarkService
	Folders   bookmarkai.FolderService
	Ingester  bookmarkai.Ingester
	Chatter   bookmarkai.Chatter
	Hasher    bookmarkai.PasswordHasher
	Metrics   *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"BOOKMARKD_DB" help:"SQLite database path"`
	Config    string `short:"c" env:"BOOKMARKD_CONFIG" help:"YAML settings file"`
	Provider  string `env:"BOOKMARKD_PROVIDER" help:"AI provider (gemini, anthropic, openai)"`
	Model     string `env:"BOOKMARKD_MODEL" help:"Provider model override"`
	Fetcher   string `env:"BOOKMARKD_FETCHER" help:"Page fetcher (http, or rod for JavaScript-rendered pages)"`
	Extractor string `env:"BOOKMARKD_EXTRACTOR" help:"Main content extractor (goquery, trafilatura, readability)"`
	LogLevel  string `name:"log-level" env:"BOOKMARKD_LOG_LEVEL" enum:"debug,info,warn,error" default:"warn" help:"Log level"`

	Serve ServeCmd `cmd:"" help:"Run the HTTP API server"`
	Add   AddCmd   `cmd:"" help:"Bookmark a URL for the local user"`
	List  ListCmd  `cmd:"" help:"List the local user's bookmarks"`
	Tags  TagsCmd  `cmd:"" help:"Show the local user's tags by usage"`
	User  UserCmd  `cmd:"" help:"Manage users"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `env:"BOOKMARKD_ADDR" default:":8080" help:"Listen address"`
	JWTSecret string `name:"jwt-secret" env:"BOOKMARKD_JWT_SECRET" required:"" help:"Secret used to sign bearer tokens"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL    string `arg:"" help:"URL to bookmark"`
	APIKey string `name:"api-key" env:"BOOKMARKD_API_KEY" help:"Provider API key (defaults to the local user's stored key)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Tags  []string `short:"t" name:"tag" help:"Only bookmarks with any of these tags (repeatable)"`
	Query string   `short:"q" help:"Search title, description, summary and URL"`
	Page  int      `default:"1" help:"Page number"`
	Limit int      `default:"20" help:"Bookmarks per page"`
}

// TagsCmd is the "tags" subcommand.
type TagsCmd struct{}

// UserCmd groups user management subcommands.
type UserCmd struct {
	Create UserCreateCmd `cmd:"" help:"Create a user that can log in to the API"`
}

// UserCreateCmd is the "user create" subcommand.
type UserCreateCmd struct {
	Email    string `arg:"" help:"Email address"`
	Password string `env:"BOOKMARKD_PASSWORD" required:"" help:"Password (at least 6 characters)"`
	Name     string `help:"Display name"`
}
