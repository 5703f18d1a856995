package http

import (
	"net/http"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	bookmarkai.ECONFLICT:     http.StatusConflict,
	bookmarkai.EINVALID:      http.StatusBadRequest,
	bookmarkai.ENOTFOUND:     http.StatusNotFound,
	bookmarkai.EUNAUTHORIZED: http.StatusUnauthorized,
	bookmarkai.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error writes err as a JSON error response. Internal errors are logged and
// their details withheld from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := bookmarkai.ErrorCode(err), bookmarkai.ErrorMessage(err)
	if code == bookmarkai.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
		message = "Internal error."
	}
	writeJSON(w, ErrorStatusCode(code), &ErrorResponse{Message: message})
}
