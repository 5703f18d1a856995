// Package rod implements bookmarkai.Fetcher with a headless Chrome browser,
// for pages that only render their content with JavaScript.
package rod

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"time"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements bookmarkai.Fetcher at compile time.
var _ bookmarkai.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout overrides DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. Failures are
// returned as *bookmarkai.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", bookmarkai.Errorf(bookmarkai.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", fetchError(url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.manager.Page(ctx)
	if err != nil {
		return "", fetchError(url, err)
	}
	defer release()

	if err := page.Navigate(url); err != nil {
		return "", fetchError(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchError(url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(url, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// fetchError classifies a browser failure. Chrome reports network failures
// as net::ERR_* strings in the navigation error text.
func fetchError(url string, err error) *bookmarkai.FetchError {
	kind := bookmarkai.FetchFailed

	var netErr net.Error
	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout(),
		strings.Contains(msg, "ERR_TIMED_OUT"):
		kind = bookmarkai.FetchTimeout
	case strings.Contains(msg, "ERR_CONNECTION_REFUSED"),
		strings.Contains(msg, "ERR_NAME_NOT_RESOLVED"):
		kind = bookmarkai.FetchRefused
	}

	return &bookmarkai.FetchError{Kind: kind, URL: url, Err: err}
}
