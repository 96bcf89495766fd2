package auth_test

import (
	"testing"
	"time"

	"go-jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(auth.Claims{
		UserID: "user1",
		Email:  "user1@example.com",
		Name:   "Test User",
		Role:   "USER",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "user1@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestTokenRejections(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	t.Run("empty secret cannot issue", func(t *testing.T) {
		unconfigured := auth.NewTokenIssuer("", time.Hour)
		_, err := unconfigured.Issue(auth.Claims{UserID: "user1"})
		assert.Error(t, err)
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		token, err := issuer.Issue(auth.Claims{UserID: "user1"})
		assert.NoError(t, err)

		other := auth.NewTokenIssuer("another-secret", time.Hour)
		_, err = other.Parse(token)
		assert.Error(t, err)
	})

	t.Run("expired token fails verification", func(t *testing.T) {
		shortLived := auth.NewTokenIssuer("test-secret", -time.Minute)
		token, err := shortLived.Issue(auth.Claims{UserID: "user1"})
		assert.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.Error(t, err)
	})

	t.Run("garbage input fails verification", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.Error(t, err)
	})
}
