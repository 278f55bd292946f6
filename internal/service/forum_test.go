package service

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readroom-dev/readroom/internal/domain"
	internal_errors "github.com/readroom-dev/readroom/internal/errors"
	"github.com/readroom-dev/readroom/internal/utils"
)

// Mock structs
type MockForumStorage struct {
	AuthorsFunc    func() ([]domain.Author, error)
	BooksFunc      func() ([]domain.Book, error)
	ThreadsFunc    func() ([]domain.ThreadSummary, error)
	ThreadFunc     func(id domain.ThreadId) (domain.ThreadDetail, error)
	PostsFunc      func(threadId domain.ThreadId) ([]domain.PostView, error)
	CreatePostFunc func(threadId domain.ThreadId, userId domain.UserId, content string, createdAt time.Time) (domain.PostId, error)

	createCalls int
}

func (m *MockForumStorage) Authors() ([]domain.Author, error) {
	if m.AuthorsFunc != nil {
		return m.AuthorsFunc()
	}
	return nil, nil
}

func (m *MockForumStorage) Books() ([]domain.Book, error) {
	if m.BooksFunc != nil {
		return m.BooksFunc()
	}
	return nil, nil
}

func (m *MockForumStorage) Threads() ([]domain.ThreadSummary, error) {
	if m.ThreadsFunc != nil {
		return m.ThreadsFunc()
	}
	return nil, nil
}

func (m *MockForumStorage) Thread(id domain.ThreadId) (domain.ThreadDetail, error) {
	if m.ThreadFunc != nil {
		return m.ThreadFunc(id)
	}
	return domain.ThreadDetail{}, nil
}

func (m *MockForumStorage) Posts(threadId domain.ThreadId) ([]domain.PostView, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(threadId)
	}
	return nil, nil
}

func (m *MockForumStorage) CreatePost(threadId domain.ThreadId, userId domain.UserId, content string, createdAt time.Time) (domain.PostId, error) {
	m.createCalls++
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(threadId, userId, content, createdAt)
	}
	return 1, nil
}

func newForumService(storage *MockForumStorage) *Forum {
	return NewForum(storage, &utils.PostContentValidator{})
}

func TestSubmitPost(t *testing.T) {
	user := &domain.User{Id: 1, Name: "Admin"}

	t.Run("anonymous user rejected, storage untouched", func(t *testing.T) {
		storage := &MockForumStorage{}
		service := newForumService(storage)

		_, err := service.SubmitPost(nil, 1, "this is fine")
		e, ok := err.(*internal_errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, e.StatusCode)
		assert.Zero(t, storage.createCalls)
	})

	t.Run("short content rejected before storage", func(t *testing.T) {
		storage := &MockForumStorage{}
		service := newForumService(storage)

		for _, content := range []string{"hi", "     ok   ", ""} {
			_, err := service.SubmitPost(user, 1, content)
			e, ok := err.(*internal_errors.ErrorWithStatusCode)
			require.True(t, ok, "content %q should fail validation", content)
			assert.Equal(t, http.StatusBadRequest, e.StatusCode)
		}
		assert.Zero(t, storage.createCalls)
	})

	t.Run("valid content is trimmed and saved", func(t *testing.T) {
		storage := &MockForumStorage{}
		storage.CreatePostFunc = func(threadId domain.ThreadId, userId domain.UserId, content string, createdAt time.Time) (domain.PostId, error) {
			assert.Equal(t, domain.ThreadId(1), threadId)
			assert.Equal(t, domain.UserId(1), userId)
			assert.Equal(t, "Great read overall!", content)
			assert.False(t, createdAt.IsZero())
			return 5, nil
		}
		service := newForumService(storage)

		id, err := service.SubmitPost(user, 1, "   Great read overall!  ")
		require.NoError(t, err)
		assert.Equal(t, domain.PostId(5), id)
	})

	t.Run("markup is stripped before validation", func(t *testing.T) {
		storage := &MockForumStorage{}
		var saved string
		storage.CreatePostFunc = func(_ domain.ThreadId, _ domain.UserId, content string, _ time.Time) (domain.PostId, error) {
			saved = content
			return 1, nil
		}
		service := newForumService(storage)

		_, err := service.SubmitPost(user, 1, "<b>loved this chapter</b>")
		require.NoError(t, err)
		assert.Equal(t, "loved this chapter", saved)

		// content that is nothing but markup trims to under the minimum
		_, err = service.SubmitPost(user, 1, "<script>alert(1)</script>")
		assert.Error(t, err)
	})

	t.Run("missing thread surfaces as not found", func(t *testing.T) {
		storage := &MockForumStorage{}
		storage.CreatePostFunc = func(domain.ThreadId, domain.UserId, string, time.Time) (domain.PostId, error) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: http.StatusNotFound}
		}
		service := newForumService(storage)

		_, err := service.SubmitPost(user, 99, "this is fine")
		assert.True(t, internal_errors.IsNotFound(err))
	})

	t.Run("raw storage error is replaced with generic message", func(t *testing.T) {
		storage := &MockForumStorage{}
		storage.CreatePostFunc = func(domain.ThreadId, domain.UserId, string, time.Time) (domain.PostId, error) {
			return -1, errors.New(`pq: insert or update on table "posts" violates foreign key constraint`)
		}
		service := newForumService(storage)

		_, err := service.SubmitPost(user, 1, "this is fine")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "pq:")
		assert.NotContains(t, err.Error(), "foreign key")
	})
}

func TestReadsPassThrough(t *testing.T) {
	storage := &MockForumStorage{}
	service := newForumService(storage)

	expectedAuthors := []domain.Author{{Id: 1, Name: "Italo Calvino"}}
	storage.AuthorsFunc = func() ([]domain.Author, error) { return expectedAuthors, nil }
	authors, err := service.Authors()
	require.NoError(t, err)
	assert.Equal(t, expectedAuthors, authors)

	expectedThreads := []domain.ThreadSummary{{Thread: domain.Thread{Id: 3}, BookTitle: "Kindred"}}
	storage.ThreadsFunc = func() ([]domain.ThreadSummary, error) { return expectedThreads, nil }
	threads, err := service.Threads()
	require.NoError(t, err)
	assert.Equal(t, expectedThreads, threads)

	mockError := errors.New("db down")
	storage.PostsFunc = func(domain.ThreadId) ([]domain.PostView, error) { return nil, mockError }
	_, err = service.Posts(3)
	assert.ErrorIs(t, err, mockError)
}
