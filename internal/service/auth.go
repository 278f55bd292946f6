package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/readroom-dev/readroom/internal/domain"
	"github.com/readroom-dev/readroom/internal/errors"
	"github.com/readroom-dev/readroom/internal/logger"
)

type AuthService interface {
	Register(name, email, password string) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByName(name domain.UserName) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Register hashes the password with bcrypt and persists a new user row.
// Name uniqueness is enforced at the storage level.
func (a *Auth) Register(name, email, password string) (domain.UserId, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, &errors.ErrorWithStatusCode{Message: "Name is required", StatusCode: http.StatusBadRequest}
	}
	if password == "" {
		return -1, &errors.ErrorWithStatusCode{Message: "Password is required", StatusCode: http.StatusBadRequest}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return -1, err
	}

	id, err := a.storage.SaveUser(domain.User{Name: name, Email: email, PassHash: string(passHash)})
	if err != nil {
		return -1, err
	}
	return id, nil
}

// Login checks credentials and returns a session token.
// "Unknown name" and "wrong password" deliberately collapse into the same
// message so the response doesn't reveal which names are registered.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	invalidCreds := &errors.ErrorWithStatusCode{Message: "Invalid name or password", StatusCode: http.StatusUnauthorized}

	user, err := a.storage.UserByName(strings.TrimSpace(creds.Name))
	if err != nil {
		if errors.IsNotFound(err) {
			return "", invalidCreds
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", invalidCreds
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create session token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}
