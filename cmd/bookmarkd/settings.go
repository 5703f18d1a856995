package main

import (
	"fmt"
	"os"

	"github.com/mmelton12/bookmark-ai/ingest"
	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML settings file.
//
//	provider: anthropic
//	model: claude-3-5-haiku-latest
//	analyzer:
//	  content_limit: 2000
//	  summary: {max_tokens: 200, temperature: 0.2}
type Settings struct {
	Provider  string           `yaml:"provider"`
	Model     string           `yaml:"model"`
	Fetcher   string           `yaml:"fetcher"`
	Extractor string           `yaml:"extractor"`
	Analyzer  AnalyzerSettings `yaml:"analyzer"`
}

// AnalyzerSettings tunes the content analyzer.
type AnalyzerSettings struct {
	ContentLimit int          `yaml:"content_limit"`
	Summary      CallSettings `yaml:"summary"`
	Tags         CallSettings `yaml:"tags"`
	Category     CallSettings `yaml:"category"`
}

// CallSettings tunes one provider call.
type CallSettings struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// LoadSettings reads settings from path. An empty path yields defaults.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{Provider: "gemini", Fetcher: "http", Extractor: "goquery"}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// Validate returns an error for an unknown provider, fetcher or extractor.
func (s *Settings) Validate() error {
	switch s.Provider {
	case "gemini", "anthropic", "openai":
	default:
		return fmt.Errorf("unknown provider %q (want gemini, anthropic or openai)", s.Provider)
	}
	switch s.Fetcher {
	case "http", "rod":
	default:
		return fmt.Errorf("unknown fetcher %q (want http or rod)", s.Fetcher)
	}
	switch s.Extractor {
	case "goquery", "trafilatura", "readability":
	default:
		return fmt.Errorf("unknown extractor %q (want goquery, trafilatura or readability)", s.Extractor)
	}
	return nil
}

// AnalyzerConfig converts the analyzer settings. Zero values fall back to
// the analyzer defaults.
func (s *Settings) AnalyzerConfig() ingest.Config {
	return ingest.Config{
		ContentLimit: s.Analyzer.ContentLimit,
		Summary:      ingest.CallSettings(s.Analyzer.Summary),
		Tags:         ingest.CallSettings(s.Analyzer.Tags),
		Category:     ingest.CallSettings(s.Analyzer.Category),
	}
}
