package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/readroom-dev/readroom/internal/domain"
	internal_errors "github.com/readroom-dev/readroom/internal/errors"
	"github.com/readroom-dev/readroom/internal/logger"
)

type ForumService interface {
	Authors() ([]domain.Author, error)
	Books() ([]domain.Book, error)
	Threads() ([]domain.ThreadSummary, error)
	Thread(id domain.ThreadId) (domain.ThreadDetail, error)
	Posts(threadId domain.ThreadId) ([]domain.PostView, error)
	SubmitPost(user *domain.User, threadId domain.ThreadId, content string) (domain.PostId, error)
}

type Forum struct {
	storage   ForumStorage
	validator PostValidator
	sanitizer *bluemonday.Policy
}

type ForumStorage interface {
	Authors() ([]domain.Author, error)
	Books() ([]domain.Book, error)
	Threads() ([]domain.ThreadSummary, error)
	Thread(id domain.ThreadId) (domain.ThreadDetail, error)
	Posts(threadId domain.ThreadId) ([]domain.PostView, error)
	CreatePost(threadId domain.ThreadId, userId domain.UserId, content string, createdAt time.Time) (domain.PostId, error)
}

type PostValidator interface {
	Content(text string) error
}

func NewForum(storage ForumStorage, validator PostValidator) *Forum {
	// Plain-text forum: strip all markup from submitted content
	return &Forum{storage: storage, validator: validator, sanitizer: bluemonday.StrictPolicy()}
}

// Read queries pass straight through to storage. They require no session and
// have no side effects.

func (f *Forum) Authors() ([]domain.Author, error) {
	return f.storage.Authors()
}

func (f *Forum) Books() ([]domain.Book, error) {
	return f.storage.Books()
}

func (f *Forum) Threads() ([]domain.ThreadSummary, error) {
	return f.storage.Threads()
}

func (f *Forum) Thread(id domain.ThreadId) (domain.ThreadDetail, error) {
	return f.storage.Thread(id)
}

func (f *Forum) Posts(threadId domain.ThreadId) ([]domain.PostView, error) {
	return f.storage.Posts(threadId)
}

// SubmitPost is the one user-facing write: validate the session, validate the
// content, then insert the post in a single transaction. Storage failures are
// logged with full detail but surface to the caller as a generic message.
func (f *Forum) SubmitPost(user *domain.User, threadId domain.ThreadId, content string) (domain.PostId, error) {
	if user == nil {
		return -1, &internal_errors.ErrorWithStatusCode{Message: "Please sign in to reply", StatusCode: http.StatusUnauthorized}
	}

	content = strings.TrimSpace(f.sanitizer.Sanitize(strings.TrimSpace(content)))
	if err := f.validator.Content(content); err != nil {
		return -1, err
	}

	id, err := f.storage.CreatePost(threadId, user.Id, content, time.Now().UTC().Round(time.Microsecond))
	if err != nil {
		if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
			return -1, e
		}
		logger.Log.Error("failed to save post", "thread_id", threadId, "user_id", user.Id, "error", err)
		return -1, &internal_errors.ErrorWithStatusCode{Message: "Could not save your reply, please try again", StatusCode: http.StatusInternalServerError}
	}
	return id, nil
}
