package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	bookmarkhttp "github.com/mmelton12/bookmark-ai/http"
	"github.com/mmelton12/bookmark-ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testUser is the user behind testToken.
var testUser = &bookmarkai.User{ID: "u1", Email: "ada@example.com", APIKey: "stored-key"}

const testToken = "valid-token"

// newTestServer returns a server whose token service accepts testToken
// for testUser. Other services are left for each test to assign.
func newTestServer(t *testing.T) *bookmarkhttp.Server {
	t.Helper()
	s := bookmarkhttp.NewServer()
	s.TokenService = &mock.TokenService{
		IssueFn: func(userID string) (string, error) {
			return "token-for-" + userID, nil
		},
		VerifyFn: func(token string) (string, error) {
			if token != testToken {
				return "", bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Token is not valid")
			}
			return testUser.ID, nil
		},
	}
	s.UserService = &mock.UserService{
		FindUserByIDFn: func(ctx context.Context, id string) (*bookmarkai.User, error) {
			if id != testUser.ID {
				return nil, bookmarkai.Errorf(bookmarkai.ENOTFOUND, "User not found")
			}
			u := *testUser
			return &u, nil
		},
	}
	return s
}

// do sends a request to h with the test token and returns the recorded response.
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func newBufferLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func requireMessage(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	assert.Equal(t, message, decode[bookmarkhttp.ErrorResponse](t, w).Message)
}

func TestErrorStatusCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, bookmarkhttp.ErrorStatusCode(bookmarkai.EINVALID))
	assert.Equal(t, http.StatusUnauthorized, bookmarkhttp.ErrorStatusCode(bookmarkai.EUNAUTHORIZED))
	assert.Equal(t, http.StatusNotFound, bookmarkhttp.ErrorStatusCode(bookmarkai.ENOTFOUND))
	assert.Equal(t, http.StatusConflict, bookmarkhttp.ErrorStatusCode(bookmarkai.ECONFLICT))
	assert.Equal(t, http.StatusInternalServerError, bookmarkhttp.ErrorStatusCode(bookmarkai.EINTERNAL))
	assert.Equal(t, http.StatusInternalServerError, bookmarkhttp.ErrorStatusCode("unknown"))
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	w := do(t, newTestServer(t), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/metrics", "").Code)

	s.Metrics = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bookmarkai_ingest_total 1\n"))
	})
	w := do(t, s, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookmarkai_ingest_total")
}

func TestServer_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("rejects missing token", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
		w := httptest.NewRecorder()
		newTestServer(t).ServeHTTP(w, req)

		requireMessage(t, w, http.StatusUnauthorized, "Not authorized, no token")
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()
		newTestServer(t).ServeHTTP(w, req)

		requireMessage(t, w, http.StatusUnauthorized, "Token is not valid")
	})

	t.Run("rejects token for deleted user", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.UserService = &mock.UserService{
			FindUserByIDFn: func(ctx context.Context, id string) (*bookmarkai.User, error) {
				return nil, bookmarkai.Errorf(bookmarkai.ENOTFOUND, "User not found")
			},
		}

		requireMessage(t, do(t, s, http.MethodGet, "/api/auth/me", ""), http.StatusUnauthorized, "Token is not valid")
	})
}

func TestServer_InternalErrorHidesDetails(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	s := newTestServer(t)
	s.Logger = newBufferLogger(&logs)
	s.BookmarkService = &mock.BookmarkService{
		CountTagsFn: func(ctx context.Context, userID string) ([]bookmarkai.TagCount, error) {
			return nil, assert.AnError
		},
	}

	w := do(t, s, http.MethodGet, "/api/bookmarks/tags", "")

	requireMessage(t, w, http.StatusInternalServerError, "Internal error.")
	assert.Contains(t, logs.String(), assert.AnError.Error())
}

func TestServer_AccessLog(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	s := newTestServer(t)
	s.Logger = newBufferLogger(&logs)

	do(t, s, http.MethodGet, "/health", "")

	output := logs.String()
	assert.Contains(t, output, `msg="http request"`)
	assert.Contains(t, output, "method=GET")
	assert.Contains(t, output, "path=/health")
	assert.Contains(t, output, "status=200")
	assert.Contains(t, output, "request_id=")
}

func TestServer_OpenClose(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.Addr = "127.0.0.1:0"
	require.NoError(t, s.Open())

	resp, err := http.Get(s.URL() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Close())
}
