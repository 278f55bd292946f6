package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readroom-dev/readroom/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := New("test_secret", time.Hour)
	user := domain.User{Id: 42, Name: "Admin"}

	tokenStr, err := svc.NewToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := svc.DecodeToken(tokenStr)
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, float64(42), claims["uid"])
	assert.Equal(t, "Admin", claims["name"])
	assert.NotEmpty(t, claims["jti"])
}

func TestTokenUniquePerLogin(t *testing.T) {
	svc := New("test_secret", time.Hour)
	user := domain.User{Id: 1, Name: "Admin"}

	first, err := svc.NewToken(user)
	require.NoError(t, err)
	second, err := svc.NewToken(user)
	require.NoError(t, err)

	// jti makes every issued token distinct
	assert.NotEqual(t, first, second)
}

func TestDecodeToken_WrongKey(t *testing.T) {
	issuer := New("test_secret", time.Hour)
	verifier := New("other_secret", time.Hour)

	tokenStr, err := issuer.NewToken(domain.User{Id: 1, Name: "Admin"})
	require.NoError(t, err)

	_, err = verifier.DecodeToken(tokenStr)
	assert.Error(t, err)
}

func TestDecodeToken_Expired(t *testing.T) {
	svc := New("test_secret", -time.Minute)

	tokenStr, err := svc.NewToken(domain.User{Id: 1, Name: "Admin"})
	require.NoError(t, err)

	_, err = svc.DecodeToken(tokenStr)
	assert.Error(t, err)
}

func TestDecodeToken_Garbage(t *testing.T) {
	svc := New("test_secret", time.Hour)

	_, err := svc.DecodeToken("not.a.token")
	assert.Error(t, err)
}
