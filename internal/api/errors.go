package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	RequestID  string
	// Messages holds errors.full_messages when the body carried them.
	Messages []string
}

func (e *Error) Error() string {
	msg := http.StatusText(e.StatusCode)
	if len(e.Messages) > 0 {
		msg = strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

type errorBody struct {
	Errors *struct {
		FullMessages []string `json:"full_messages"`
	} `json:"errors"`
}

const maxErrorBody = 64 << 10

func decodeError(resp *http.Response, method, path string) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode, Method: method, Path: path}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(b, &body); err != nil {
		return apiErr
	}
	if body.Errors != nil {
		apiErr.Messages = body.Errors.FullMessages
	}
	return apiErr
}

// FullMessages returns the server's field messages carried by err, if any.
func FullMessages(err error) []string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Messages
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ServerMessages lets callers outside this package read the field messages
// without importing it.
func (e *Error) ServerMessages() []string { return e.Messages }
