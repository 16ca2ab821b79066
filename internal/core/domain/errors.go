package domain

import (
	"errors"
	"sort"
	"strings"
)

// Failure categories surfaced by the upstream gateway. Screen handlers
// branch on these with errors.Is; the user-facing notification has already
// been emitted by the time one of them is returned.
var (
	// ErrSessionExpired means a 401 could not be recovered by a token
	// refresh. The web layer redirects to the login screen.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnauthorized is a terminal 401 on an already-replayed request.
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("resource not found")
	ErrServerFault  = errors.New("server error")
	// ErrUnreachable means no HTTP response was received at all.
	ErrUnreachable = errors.New("cannot connect to server")
)

// ValidationError carries the per-field messages of a structured 4xx
// payload from the external API.
type ValidationError struct {
	Fields map[string][]string
}

// Message joins all field messages into one line, fields in stable order.
func (e *ValidationError) Message() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k]...)
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message()
}

// UpstreamError is a non-2xx response that carried a single message
// (a {"detail": ...} or {"error": ...} payload) rather than field errors.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}
