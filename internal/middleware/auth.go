package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/readroom-dev/readroom/internal/domain"
	internal_errors "github.com/readroom-dev/readroom/internal/errors"
	jwt_internal "github.com/readroom-dev/readroom/internal/jwt"
	"github.com/readroom-dev/readroom/internal/utils"
)

// Key to store the user in the request context
type key int

const UserKey key = 0

// UserStorage is the slice of the credential store the middleware needs to
// resolve a token back to a live account.
type UserStorage interface {
	UserById(id domain.UserId) (domain.User, error)
}

type Auth struct {
	jwtService jwt_internal.JwtService
	storage    UserStorage
}

func NewAuth(jwtService jwt_internal.JwtService, storage UserStorage) *Auth {
	return &Auth{jwtService: jwtService, storage: storage}
}

// NeedAuth returns middleware that requires a valid session
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				if err == errNoToken {
					http.Error(w, "Please sign in", http.StatusUnauthorized)
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the user context when a valid token is present but
// lets anonymous requests through. Read pages stay viewable while logged out.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := a.extractUser(r)
			if user != nil {
				ctx := context.WithValue(r.Context(), UserKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

// extractUser decodes the session token and re-reads the account from the
// credential store, so a stale token for a deleted uid degrades to anonymous.
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token", StatusCode: http.StatusUnauthorized}
	}
	uidFloat, ok := claims["uid"].(float64)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token", StatusCode: http.StatusUnauthorized}
	}

	user, err := a.storage.UserById(domain.UserId(uidFloat))
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Please sign in", StatusCode: http.StatusUnauthorized}
		}
		return nil, err
	}

	return &user, nil
}

// GetUserFromContext retrieves the user from the context, nil when anonymous
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
