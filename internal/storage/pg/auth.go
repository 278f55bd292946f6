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

// unique_violation, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const pqUniqueViolation = "23505"

// SaveUser inserts a new user row. Name uniqueness is enforced by the
// database; a duplicate surfaces as a 409 without touching the existing row.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// UserByName fetches a user by name, used at login and registration.
func (s *Storage) UserByName(name domain.UserName) (domain.User, error) {
	return s.user(s.db, "name", name)
}

// UserById fetches a user by id, used to resolve session tokens back to a
// live account on every authenticated request.
func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.user(s.db, "id", id)
}

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id int64
	err := q.QueryRow("INSERT INTO users(name, email, password_hash) VALUES($1, $2, $3) RETURNING id",
		user.Name, user.Email, user.PassHash).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Name already taken", StatusCode: http.StatusConflict}
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) user(q Querier, column string, key interface{}) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(fmt.Sprintf("SELECT id, name, email, password_hash FROM users WHERE %s = $1", column), key).
		Scan(&user.Id, &user.Name, &user.Email, &user.PassHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
