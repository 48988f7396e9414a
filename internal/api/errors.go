package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is the single error type every failed API call surfaces.
// Detail holds the backend's `detail` message when one was present,
// otherwise the raw response body or the HTTP status text.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Detail)
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

func newAPIError(status int, body []byte) *Error {
	var errResp ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Detail != "" {
		return &Error{StatusCode: status, Detail: errResp.Detail}
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &Error{StatusCode: status, Detail: detail}
}
