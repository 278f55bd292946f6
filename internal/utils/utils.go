package utils

import (
	"net/http"
	"unicode/utf8"

	"github.com/readroom-dev/readroom/internal/errors"
)

const (
	minPostLen = 5
	maxPostLen = 10_000
)

type PostContentValidator struct{}

// Content validates already-trimmed post content.
func (v *PostContentValidator) Content(text string) error {
	if utf8.RuneCountInString(text) < minPostLen {
		return &errors.ErrorWithStatusCode{Message: "Reply must be at least 5 characters", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(text) > maxPostLen {
		return &errors.ErrorWithStatusCode{Message: "Reply is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		http.Error(w, err.Error(), e.StatusCode)
		return
	}
	// default error is 500
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
