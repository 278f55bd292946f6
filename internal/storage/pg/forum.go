package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/readroom-dev/readroom/internal/domain"
	internal_errors "github.com/readroom-dev/readroom/internal/errors"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

// Authors returns all authors sorted by name.
func (s *Storage) Authors() ([]domain.Author, error) {
	rows, err := s.db.Query("SELECT id, name, date_of_birth FROM authors ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authors: %w", err)
	}
	defer rows.Close()

	var authors []domain.Author
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.Id, &a.Name, &a.DateOfBirth); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return authors, nil
}

// Books returns all books sorted by author.
func (s *Storage) Books() ([]domain.Book, error) {
	rows, err := s.db.Query("SELECT id, title, description, genre, author_id FROM books ORDER BY author_id")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.Id, &b.Title, &b.Description, &b.Genre, &b.AuthorId); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return books, nil
}

// Threads returns all threads with their book title, newest first.
func (s *Storage) Threads() ([]domain.ThreadSummary, error) {
	rows, err := s.db.Query(`
        SELECT t.id, t.book_id, t.user_id, t.title, t.created_at, b.title
        FROM threads t
        JOIN books b ON b.id = t.book_id
        ORDER BY t.created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.ThreadSummary
	for rows.Next() {
		var t domain.ThreadSummary
		if err := rows.Scan(&t.Id, &t.BookId, &t.UserId, &t.Title, &t.CreatedAt, &t.BookTitle); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

// Thread returns one thread enriched with starter name and book info.
func (s *Storage) Thread(id domain.ThreadId) (domain.ThreadDetail, error) {
	var t domain.ThreadDetail
	err := s.db.QueryRow(`
        SELECT t.id, t.book_id, t.user_id, t.title, t.created_at, u.name, b.title, b.description
        FROM threads t
        JOIN users u ON u.id = t.user_id
        JOIN books b ON b.id = t.book_id
        WHERE t.id = $1
    `, id).Scan(&t.Id, &t.BookId, &t.UserId, &t.Title, &t.CreatedAt, &t.StarterName, &t.BookTitle, &t.BookDescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ThreadDetail{}, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: http.StatusNotFound}
		}
		return domain.ThreadDetail{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return t, nil
}

// Posts returns a thread's posts with author names, oldest first.
func (s *Storage) Posts(threadId domain.ThreadId) ([]domain.PostView, error) {
	rows, err := s.db.Query(`
        SELECT p.content, p.created_at, u.name
        FROM posts p
        JOIN users u ON u.id = p.user_id
        WHERE p.thread_id = $1
        ORDER BY p.created_at
    `, threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.PostView
	for rows.Next() {
		var p domain.PostView
		if err := rows.Scan(&p.Content, &p.CreatedAt, &p.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

// CreatePost inserts one post row inside a single transaction. The thread is
// verified inside the transaction; the user reference is enforced by the
// foreign key. On any failure the transaction rolls back and no partial row
// becomes visible.
func (s *Storage) CreatePost(threadId domain.ThreadId, userId domain.UserId, content string, createdAt time.Time) (domain.PostId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id domain.PostId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var threadExists int64
		err := tx.QueryRow("SELECT id FROM threads WHERE id = $1", threadId).Scan(&threadExists)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: http.StatusNotFound}
			}
			return fmt.Errorf("failed to validate thread: %w", err)
		}

		err = tx.QueryRow(`
            INSERT INTO posts(thread_id, user_id, content, created_at)
            VALUES($1, $2, $3, $4)
            RETURNING id
        `, threadId, userId, content, createdAt).Scan(&id)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation {
				return fmt.Errorf("post references missing row: %w", err)
			}
			return fmt.Errorf("failed to insert post: %w", err)
		}
		return nil
	})
	if err != nil {
		return -1, err
	}
	return id, nil
}
