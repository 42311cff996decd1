package apperr

import (
	"fmt"
	"strings"
)

// Stable error codes surfaced to API clients. TOKEN_EXPIRED is kept
// distinct so clients know to refresh instead of forcing a re-login.
const (
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeUnprocessableEntity = "UNPROCESSABLE_ENTITY"
	CodeResourceNotFound    = "RESOURCE_NOT_FOUND"
)

// Error is the structured error every failure reaches the API boundary
// as: a human message, a stable code and an optional field -> message
// explanation map. On key collision later writes win.
type Error struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Explain map[string]string `json:"explain"`
}

func (e *Error) Error() string {
	if len(e.Explain) == 0 {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	parts := make([]string, 0, len(e.Explain))
	for field, msg := range e.Explain {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s (%s): %s", e.Message, e.Code, strings.Join(parts, "; "))
}

// WithExplain merges extra field errors into the explanation map,
// overwriting existing keys.
func (e *Error) WithExplain(explain map[string]string) *Error {
	if e.Explain == nil {
		e.Explain = map[string]string{}
	}
	for k, v := range explain {
		e.Explain[k] = v
	}
	return e
}

func Validation(explain map[string]string) *Error {
	return &Error{Message: "Invalid data", Code: CodeUnprocessableEntity, Explain: clone(explain)}
}

func NotFound(explain map[string]string) *Error {
	return &Error{Message: "Data couldn't be found", Code: CodeResourceNotFound, Explain: clone(explain)}
}

func ExpiredToken() *Error {
	return &Error{Message: "Expired token", Code: CodeTokenExpired, Explain: map[string]string{}}
}

func Generic(explain map[string]string) *Error {
	return &Error{Message: "Common error", Code: CodeUnprocessableEntity, Explain: clone(explain)}
}

// clone keeps the shared message maps in messages.go immutable.
func clone(explain map[string]string) map[string]string {
	copied := make(map[string]string, len(explain))
	for k, v := range explain {
		copied[k] = v
	}
	return copied
}
