package ingest

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"golang.org/x/sync/errgroup"
)

// Content window sent to the provider.
const (
	DefaultContentLimit = 1000
	MaxContentLimit     = 4000
)

// CallSettings tunes a single provider call.
type CallSettings struct {
	MaxTokens   int
	Temperature float64
}

// Config tunes the Analyzer. Zero fields take their defaults.
type Config struct {
	// ContentLimit is how many characters of page content are sent to the
	// provider. Clamped to MaxContentLimit.
	ContentLimit int

	Summary  CallSettings
	Tags     CallSettings
	Category CallSettings
}

// DefaultConfig returns the Analyzer defaults.
func DefaultConfig() Config {
	return Config{
		ContentLimit: DefaultContentLimit,
		Summary:      CallSettings{MaxTokens: 150, Temperature: 0.3},
		Tags:         CallSettings{MaxTokens: 100, Temperature: 0.3},
		Category:     CallSettings{MaxTokens: 10, Temperature: 0.1},
	}
}

// withDefaults fills zero fields of c from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ContentLimit <= 0 {
		c.ContentLimit = d.ContentLimit
	}
	c.ContentLimit = min(c.ContentLimit, MaxContentLimit)
	if c.Summary.MaxTokens <= 0 {
		c.Summary = d.Summary
	}
	if c.Tags.MaxTokens <= 0 {
		c.Tags = d.Tags
	}
	if c.Category.MaxTokens <= 0 {
		c.Category = d.Category
	}
	return c
}

// Ensure Analyzer implements bookmarkai.Analyzer at compile time.
var _ bookmarkai.Analyzer = (*Analyzer)(nil)

// Analyzer derives a summary, tags and a category for page content with
// three concurrent provider calls. A failed call resolves to its default
// value and never fails the others.
type Analyzer struct {
	provider bookmarkai.Provider
	config   Config
}

// NewAnalyzer creates an Analyzer backed by provider.
func NewAnalyzer(provider bookmarkai.Provider, config Config) *Analyzer {
	return &Analyzer{provider: provider, config: config.withDefaults()}
}

// Analyze returns the analysis of content fetched from url.
func (a *Analyzer) Analyze(ctx context.Context, url, content, credential string) (*bookmarkai.Analysis, error) {
	if credential == "" {
		return nil, bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "credential missing")
	}

	window := truncateRunes(content, a.config.ContentLimit)

	var analysis bookmarkai.Analysis
	var failed atomic.Bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis.Summary = a.summarize(gctx, window, credential, &failed)
		return nil
	})
	g.Go(func() error {
		analysis.Tags = a.tag(gctx, url, window, credential, &failed)
		return nil
	})
	g.Go(func() error {
		analysis.Category = a.categorize(gctx, url, window, credential, &failed)
		return nil
	})
	_ = g.Wait()
	analysis.Degraded = failed.Load()

	return &analysis, nil
}

func (a *Analyzer) summarize(ctx context.Context, content, credential string, failed *atomic.Bool) string {
	reply, err := a.provider.Complete(ctx, credential, bookmarkai.Prompt{
		System:      summarySystemPrompt,
		User:        content,
		MaxTokens:   a.config.Summary.MaxTokens,
		Temperature: a.config.Summary.Temperature,
	})
	if err != nil {
		failed.Store(true)
		return bookmarkai.SummaryGenerationFailed
	}
	if reply = strings.TrimSpace(reply); reply == "" {
		return bookmarkai.SummaryEmpty
	}
	return reply
}

func (a *Analyzer) tag(ctx context.Context, url, content, credential string, failed *atomic.Bool) []string {
	reply, err := a.provider.Complete(ctx, credential, bookmarkai.Prompt{
		System:      tagsSystemPrompt,
		User:        pageUserPrompt(url, content),
		MaxTokens:   a.config.Tags.MaxTokens,
		Temperature: a.config.Tags.Temperature,
	})
	if err != nil {
		failed.Store(true)
		return []string{}
	}
	return ParseTags(reply)
}

func (a *Analyzer) categorize(ctx context.Context, url, content, credential string, failed *atomic.Bool) bookmarkai.Category {
	if c, ok := CategoryFromURL(url); ok {
		return c
	}

	reply, err := a.provider.Complete(ctx, credential, bookmarkai.Prompt{
		System:      categorySystemPrompt,
		User:        pageUserPrompt(url, content),
		MaxTokens:   a.config.Category.MaxTokens,
		Temperature: a.config.Category.Temperature,
	})
	if err != nil {
		failed.Store(true)
		return bookmarkai.CategoryArticle
	}
	if c, ok := bookmarkai.ParseCategory(strings.TrimSpace(reply)); ok {
		return c
	}
	return bookmarkai.CategoryArticle
}

var (
	videoURLMarkers    = []string{"youtube.com", "vimeo.com", "dailymotion.com", "video"}
	researchURLMarkers = []string{"arxiv.org", "research", "paper", "doi.org"}
)

// CategoryFromURL classifies well-known video and research URLs without
// asking a provider.
func CategoryFromURL(url string) (bookmarkai.Category, bool) {
	lower := strings.ToLower(url)
	for _, m := range videoURLMarkers {
		if strings.Contains(lower, m) {
			return bookmarkai.CategoryVideo, true
		}
	}
	for _, m := range researchURLMarkers {
		if strings.Contains(lower, m) {
			return bookmarkai.CategoryResearch, true
		}
	}
	return "", false
}

// ParseTags reads the first JSON array of strings in reply. Code fences and
// surrounding prose are ignored. An unparseable reply yields no tags.
func ParseTags(reply string) []string {
	start := strings.Index(reply, "[")
	if start < 0 {
		return []string{}
	}

	var raw []string
	if err := json.NewDecoder(strings.NewReader(reply[start:])).Decode(&raw); err != nil {
		return []string{}
	}

	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
