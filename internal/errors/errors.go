package errors

import (
	"net/http"
)

// ErrorWithStatusCode carries a user-safe message together with the HTTP
// status it should be rendered with. Anything else bubbling out of the core
// is treated as an internal error by the handlers.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func IsNotFound(err error) bool {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
