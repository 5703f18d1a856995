package ingest_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/ingest"
	"github.com/mmelton12/bookmark-ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routingProvider answers each analysis call based on its system prompt.
func routingProvider(summary, tags, category func() (string, error)) *mock.Provider {
	return &mock.Provider{
		CompleteFn: func(_ context.Context, _ string, p bookmarkai.Prompt) (string, error) {
			switch {
			case strings.Contains(p.System, "summaries"):
				return summary()
			case strings.Contains(p.System, "tag generator"):
				return tags()
			default:
				return category()
			}
		},
	}
}

func reply(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}

func fail() (string, error) {
	return "", errors.New("provider unavailable")
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("returns provider results", func(t *testing.T) {
		t.Parallel()

		provider := routingProvider(
			reply("  Go is a language.  "),
			reply(`["go", "concurrency", "programming"]`),
			reply("Research\n"),
		)
		a := ingest.NewAnalyzer(provider, ingest.Config{})

		analysis, err := a.Analyze(context.Background(), "https://go.dev/", "content", "key")

		require.NoError(t, err)
		assert.Equal(t, "Go is a language.", analysis.Summary)
		assert.Equal(t, []string{"go", "concurrency", "programming"}, analysis.Tags)
		assert.Equal(t, bookmarkai.CategoryResearch, analysis.Category)
		assert.False(t, analysis.Degraded)
	})

	t.Run("returns EUNAUTHORIZED without calling provider when credential missing", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		provider := &mock.Provider{
			CompleteFn: func(context.Context, string, bookmarkai.Prompt) (string, error) {
				calls.Add(1)
				return "", nil
			},
		}
		a := ingest.NewAnalyzer(provider, ingest.Config{})

		_, err := a.Analyze(context.Background(), "https://go.dev/", "content", "")

		require.Error(t, err)
		assert.Equal(t, bookmarkai.EUNAUTHORIZED, bookmarkai.ErrorCode(err))
		assert.Zero(t, calls.Load())
	})

	t.Run("each failed call resolves to its default", func(t *testing.T) {
		t.Parallel()

		a := ingest.NewAnalyzer(routingProvider(fail, fail, fail), ingest.Config{})

		analysis, err := a.Analyze(context.Background(), "https://example.com/", "content", "key")

		require.NoError(t, err)
		assert.Equal(t, bookmarkai.SummaryGenerationFailed, analysis.Summary)
		assert.NotNil(t, analysis.Tags)
		assert.Empty(t, analysis.Tags)
		assert.Equal(t, bookmarkai.CategoryArticle, analysis.Category)
		assert.True(t, analysis.Degraded)
	})

	t.Run("one failed call does not affect the others", func(t *testing.T) {
		t.Parallel()

		a := ingest.NewAnalyzer(routingProvider(reply("Summary."), fail, reply("Video")), ingest.Config{})

		analysis, err := a.Analyze(context.Background(), "https://example.com/", "content", "key")

		require.NoError(t, err)
		assert.Equal(t, "Summary.", analysis.Summary)
		assert.Empty(t, analysis.Tags)
		assert.Equal(t, bookmarkai.CategoryVideo, analysis.Category)
		assert.True(t, analysis.Degraded)
	})

	t.Run("empty summary becomes placeholder", func(t *testing.T) {
		t.Parallel()

		a := ingest.NewAnalyzer(routingProvider(reply("   "), reply("[]"), reply("Article")), ingest.Config{})

		analysis, err := a.Analyze(context.Background(), "https://example.com/", "content", "key")

		require.NoError(t, err)
		assert.Equal(t, bookmarkai.SummaryEmpty, analysis.Summary)
	})

	t.Run("malformed tag response yields no tags", func(t *testing.T) {
		t.Parallel()

		a := ingest.NewAnalyzer(routingProvider(reply("S."), reply("here are some tags: go, rust"), reply("Article")), ingest.Config{})

		analysis, err := a.Analyze(context.Background(), "https://example.com/", "content", "key")

		require.NoError(t, err)
		assert.Empty(t, analysis.Tags)
		assert.False(t, analysis.Degraded)
	})

	t.Run("unknown category becomes Article", func(t *testing.T) {
		t.Parallel()

		a := ingest.NewAnalyzer(routingProvider(reply("S."), reply("[]"), reply("Podcast")), ingest.Config{})

		analysis, err := a.Analyze(context.Background(), "https://example.com/", "content", "key")

		require.NoError(t, err)
		assert.Equal(t, bookmarkai.CategoryArticle, analysis.Category)
	})

	t.Run("category shortcut skips provider", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var systems []string
		provider := &mock.Provider{
			CompleteFn: func(_ context.Context, _ string, p bookmarkai.Prompt) (string, error) {
				mu.Lock()
				systems = append(systems, p.System)
				mu.Unlock()
				return "Article", nil
			},
		}
		a := ingest.NewAnalyzer(provider, ingest.Config{})

		analysis, err := a.Analyze(context.Background(), "https://www.youtube.com/watch?v=1", "content", "key")

		require.NoError(t, err)
		assert.Equal(t, bookmarkai.CategoryVideo, analysis.Category)
		assert.Len(t, systems, 2)
		for _, s := range systems {
			assert.NotContains(t, s, "content classifier")
		}
	})

	t.Run("sends content window and call settings", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		prompts := map[string]bookmarkai.Prompt{}
		provider := &mock.Provider{
			CompleteFn: func(_ context.Context, _ string, p bookmarkai.Prompt) (string, error) {
				mu.Lock()
				defer mu.Unlock()
				switch {
				case strings.Contains(p.System, "summaries"):
					prompts["summary"] = p
				case strings.Contains(p.System, "tag generator"):
					prompts["tags"] = p
				default:
					prompts["category"] = p
				}
				return "", nil
			},
		}
		a := ingest.NewAnalyzer(provider, ingest.Config{ContentLimit: 5})

		_, err := a.Analyze(context.Background(), "https://example.com/", "abcdefghij", "key")

		require.NoError(t, err)
		assert.Equal(t, "abcde", prompts["summary"].User)
		assert.Equal(t, 150, prompts["summary"].MaxTokens)
		assert.Equal(t, "URL: https://example.com/\n\nContent: abcde", prompts["tags"].User)
		assert.Equal(t, 100, prompts["tags"].MaxTokens)
		assert.Equal(t, 10, prompts["category"].MaxTokens)
		assert.InDelta(t, 0.1, prompts["category"].Temperature, 1e-9)
	})

	t.Run("passes credential to provider", func(t *testing.T) {
		t.Parallel()

		var got atomic.Value
		provider := &mock.Provider{
			CompleteFn: func(_ context.Context, credential string, _ bookmarkai.Prompt) (string, error) {
				got.Store(credential)
				return "", nil
			},
		}
		a := ingest.NewAnalyzer(provider, ingest.Config{})

		_, err := a.Analyze(context.Background(), "https://example.com/", "c", "user-key")

		require.NoError(t, err)
		assert.Equal(t, "user-key", got.Load())
	})
}

func TestCategoryFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bookmarkai.Category
		ok   bool
	}{
		{"https://youtube.com/watch?v=x", bookmarkai.CategoryVideo, true},
		{"https://vimeo.com/123", bookmarkai.CategoryVideo, true},
		{"https://dailymotion.com/v", bookmarkai.CategoryVideo, true},
		{"https://example.com/my-VIDEO-post", bookmarkai.CategoryVideo, true},
		{"https://arxiv.org/abs/1234", bookmarkai.CategoryResearch, true},
		{"https://doi.org/10.1000/182", bookmarkai.CategoryResearch, true},
		{"https://example.com/research/x", bookmarkai.CategoryResearch, true},
		{"https://example.com/white-paper", bookmarkai.CategoryResearch, true},
		{"https://example.com/blog", "", false},
	}

	for _, tt := range tests {
		got, ok := ingest.CategoryFromURL(tt.url)
		assert.Equal(t, tt.ok, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"plain array", `["go", "rust"]`, []string{"go", "rust"}},
		{"code fence", "```json\n[\"Go\", \" Rust \"]\n```", []string{"go", "rust"}},
		{"surrounding prose", `Sure! Here are the tags: ["a", "b"] Hope this helps.`, []string{"a", "b"}},
		{"drops empty strings", `["a", "", "  "]`, []string{"a"}},
		{"no array", "go, rust", []string{}},
		{"non-string elements", `[1, 2]`, []string{}},
		{"truncated array", `["go", "ru`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ingest.ParseTags(tt.reply))
		})
	}
}
