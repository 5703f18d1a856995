package mock

import (
	"context"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

var _ bookmarkai.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of bookmarkai.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, url, content, credential string) (*bookmarkai.Analysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, url, content, credential string) (*bookmarkai.Analysis, error) {
	return a.AnalyzeFn(ctx, url, content, credential)
}

var _ bookmarkai.Provider = (*Provider)(nil)

// Provider is a mock implementation of bookmarkai.Provider.
type Provider struct {
	NameFn     func() string
	CompleteFn func(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error)
}

func (p *Provider) Name() string {
	if p.NameFn == nil {
		return "mock"
	}
	return p.NameFn()
}

func (p *Provider) Complete(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error) {
	return p.CompleteFn(ctx, credential, prompt)
}
