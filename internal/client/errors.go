package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken is returned before any I/O when an identity-bearing call
// is made without a bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// ErrTransport wraps failures where the request never got a response.
var ErrTransport = errors.New("request failed")

// Error is a non-2xx response from the API.
type Error struct {
	StatusCode int
	// ServerError is the backend's {"error": ...} message, if any.
	ServerError string
	// Message is the fallback {"message": ...} field.
	Message string
	Trace   string
}

// Error renders the message the UI shows inline: the server's error text,
// or "Error <status>: <message or status text>".
func (e *Error) Error() string {
	if e.ServerError != "" {
		return e.ServerError
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("Error %d: %s", e.StatusCode, msg)
}

func (e *Error) IsNotFound() bool     { return e.StatusCode == http.StatusNotFound }
func (e *Error) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }
func (e *Error) IsForbidden() bool    { return e.StatusCode == http.StatusForbidden }
func (e *Error) IsConflict() bool     { return e.StatusCode == http.StatusConflict }
func (e *Error) IsBadRequest() bool   { return e.StatusCode == http.StatusBadRequest }

func parseError(statusCode int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Trace   string `json:"trace"`
	}
	// Non-JSON bodies (proxies, HTML error pages) fall back to the status text.
	_ = json.Unmarshal(body, &payload)
	return &Error{
		StatusCode:  statusCode,
		ServerError: payload.Error,
		Message:     payload.Message,
		Trace:       payload.Trace,
	}
}

// AsError unwraps err into an API error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func statusIs(err error, code int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == code
}

func IsNotFound(err error) bool     { return statusIs(err, http.StatusNotFound) }
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }
func IsForbidden(err error) bool    { return statusIs(err, http.StatusForbidden) }
func IsConflict(err error) bool     { return statusIs(err, http.StatusConflict) }

// IsTransport reports whether the request never got a response.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

func requireToken(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	return nil
}
