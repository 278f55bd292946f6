package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/readroom-dev/readroom/internal/domain"
	"github.com/readroom-dev/readroom/internal/middleware"
)

func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.forum.Authors()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, authors)
}

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.forum.Books()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, books)
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.forum.Threads()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, threads)
}

type threadResponse struct {
	Thread domain.ThreadDetail `json:"thread"`
	Posts  []domain.PostView   `json:"posts"`
}

// GetThread renders a thread with its posts. Viewable by anonymous users.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := threadIdParam(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	thread, err := h.forum.Thread(threadId)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	posts, err := h.forum.Posts(threadId)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, threadResponse{Thread: thread, Posts: posts})
}

type createPostRequest struct {
	Content string `validate:"required" json:"content"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	threadId, err := threadIdParam(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var req createPostRequest
	if err := loadAndValidateRequestBody(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	user := middleware.GetUserFromContext(r)
	id, err := h.forum.SubmitPost(user, threadId, req.Content)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]domain.PostId{"id": id})
}

func threadIdParam(r *http.Request) (domain.ThreadId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "thread"), 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
