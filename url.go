package bookmarkai

import (
	"net"
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a user-submitted URL for storage and duplicate
// detection. It adds https:// when no scheme is present, strips a single
// leading "www." label, drops the query and fragment, and removes trailing
// slashes from non-root paths. If the input cannot be parsed it is returned
// unchanged; callers must validate with ValidateURL first.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.TrimSpace(raw)
	if !hasHTTPScheme(s) {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return raw
	}

	path := strings.TrimRight(u.EscapedPath(), "/")
	if path == "" {
		path = "/"
	}

	return u.Scheme + "://" + host + path
}

// ValidateURL returns EINVALID unless raw is a well-formed http(s) URL with a
// plausible host. A missing scheme is allowed. URLs carrying userinfo and
// hosts with a repeated "www." label are rejected because NormalizeURL
// would drop or rewrite part of them.
func ValidateURL(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return Errorf(EINVALID, "Please provide a valid URL")
	}

	if strings.Contains(s, "://") {
		if !hasHTTPScheme(s) {
			return Errorf(EINVALID, "Please provide a valid URL")
		}
	} else {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.User != nil {
		return Errorf(EINVALID, "Please provide a valid URL")
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "":
		return Errorf(EINVALID, "Please provide a valid URL")
	case host == "localhost", net.ParseIP(host) != nil:
		return nil
	case strings.HasPrefix(host, "www.www."),
		!strings.Contains(host, "."),
		strings.HasPrefix(host, "."),
		strings.HasSuffix(host, "."),
		strings.Contains(host, ".."):
		return Errorf(EINVALID, "Please provide a valid URL")
	}
	return nil
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
