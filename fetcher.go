package bookmarkai

import (
	"context"
	"errors"
	"fmt"
)

// UserAgent is presented by every Fetcher. Some sites refuse clients that do
// not look like a browser.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves the HTML of a page.
// Implementations should return a *FetchError so callers can surface a
// user-actionable message.
type Fetcher interface {
	// Fetch performs a single attempt to retrieve url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FetchErrorKind classifies why a fetch failed.
type FetchErrorKind int

// FetchErrorKind constants.
const (
	FetchFailed FetchErrorKind = iota
	FetchRefused
	FetchTimeout
	FetchForbidden
	FetchNotFound
	FetchRateLimited
)

// String returns a short identifier used in logs and metrics.
func (k FetchErrorKind) String() string {
	switch k {
	case FetchRefused:
		return "refused"
	case FetchTimeout:
		return "timeout"
	case FetchForbidden:
		return "forbidden"
	case FetchNotFound:
		return "not_found"
	case FetchRateLimited:
		return "rate_limited"
	default:
		return "failed"
	}
}

// FetchError is returned by a Fetcher when a page cannot be retrieved.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message returns the explanation shown to the user in place of a summary.
func (e *FetchError) Message() string {
	switch e.Kind {
	case FetchRefused:
		return "Could not connect to the website. Please check the URL and try again."
	case FetchTimeout:
		return "Request timed out. Please try again."
	case FetchForbidden:
		return "Access to this website is forbidden. The website might be blocking our requests."
	case FetchNotFound:
		return "The page could not be found. Please check the URL and try again."
	case FetchRateLimited:
		return "Too many requests to this website. Please try again later."
	}

	detail := "Unknown error"
	if e.StatusCode != 0 {
		detail = fmt.Sprintf("HTTP %d", e.StatusCode)
	} else if e.Err != nil {
		detail = e.Err.Error()
	}
	return "Failed to fetch content: " + detail
}

// FetchErrorMessage returns the user-facing message for any fetch or
// extraction failure.
func FetchErrorMessage(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Message()
	}
	if err != nil {
		return "Failed to fetch content: " + err.Error()
	}
	return SummaryFetchFailed
}

// StatusFetchErrorKind maps an unsuccessful HTTP status code to a FetchErrorKind.
func StatusFetchErrorKind(status int) FetchErrorKind {
	switch status {
	case 403:
		return FetchForbidden
	case 404:
		return FetchNotFound
	case 429:
		return FetchRateLimited
	default:
		return FetchFailed
	}
}
