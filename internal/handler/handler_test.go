package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/readroom-dev/readroom/internal/config"
	"github.com/readroom-dev/readroom/internal/domain"
)

// Mocks for the service interfaces, function-field style.

type MockAuthService struct {
	RegisterFunc func(name, email, password string) (domain.UserId, error)
	LoginFunc    func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Register(name, email, password string) (domain.UserId, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(name, email, password)
	}
	return 1, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "token", nil
}

type MockForumService struct {
	AuthorsFunc    func() ([]domain.Author, error)
	BooksFunc      func() ([]domain.Book, error)
	ThreadsFunc    func() ([]domain.ThreadSummary, error)
	ThreadFunc     func(id domain.ThreadId) (domain.ThreadDetail, error)
	PostsFunc      func(threadId domain.ThreadId) ([]domain.PostView, error)
	SubmitPostFunc func(user *domain.User, threadId domain.ThreadId, content string) (domain.PostId, error)
}

func (m *MockForumService) Authors() ([]domain.Author, error) {
	if m.AuthorsFunc != nil {
		return m.AuthorsFunc()
	}
	return nil, nil
}

func (m *MockForumService) Books() ([]domain.Book, error) {
	if m.BooksFunc != nil {
		return m.BooksFunc()
	}
	return nil, nil
}

func (m *MockForumService) Threads() ([]domain.ThreadSummary, error) {
	if m.ThreadsFunc != nil {
		return m.ThreadsFunc()
	}
	return nil, nil
}

func (m *MockForumService) Thread(id domain.ThreadId) (domain.ThreadDetail, error) {
	if m.ThreadFunc != nil {
		return m.ThreadFunc(id)
	}
	return domain.ThreadDetail{}, nil
}

func (m *MockForumService) Posts(threadId domain.ThreadId) ([]domain.PostView, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(threadId)
	}
	return nil, nil
}

func (m *MockForumService) SubmitPost(user *domain.User, threadId domain.ThreadId, content string) (domain.PostId, error) {
	if m.SubmitPostFunc != nil {
		return m.SubmitPostFunc(user, threadId, content)
	}
	return 1, nil
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{Port: 8080, JwtTTLHours: 720}}
}

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"message":"hello"}`+"\n", rr.Body.String())
}

func TestLoadAndValidateRequestBody(t *testing.T) {
	type body struct {
		Name string `validate:"required" json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := createRequest(t, "POST", "/", []byte(`{"name":"x"}`))
		var b body
		assert.NoError(t, loadAndValidateRequestBody(req.Body, &b))
		assert.Equal(t, "x", b.Name)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := createRequest(t, "POST", "/", []byte(`{`))
		var b body
		assert.Error(t, loadAndValidateRequestBody(req.Body, &b))
	})

	t.Run("missing required field", func(t *testing.T) {
		req := createRequest(t, "POST", "/", []byte(`{}`))
		var b body
		assert.Error(t, loadAndValidateRequestBody(req.Body, &b))
	})
}
