package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/contexts"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(AuthConfig{SecretKey: "test-secret"})
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "u1")
	require.NoError(t, err)

	userID, err := svc.ParseToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	svc := NewAuthService(AuthConfig{SecretKey: "test-secret"})
	other := NewAuthService(AuthConfig{SecretKey: "other-secret"})
	ctx := context.Background()

	_, err := svc.ParseToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidJWT)

	token, err := other.GenerateToken(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidJWT)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService(AuthConfig{SecretKey: "test-secret", TokenTTL: -time.Hour})
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidJWT)
}

func TestResolveIdentityPrecedence(t *testing.T) {
	svc := NewAuthService(AuthConfig{SecretKey: "test-secret"})
	ctx := context.Background()

	t.Run("token wins over ambient actor", func(t *testing.T) {
		token, err := svc.GenerateToken(ctx, "token-user")
		require.NoError(t, err)

		ambient := contexts.WithActorID(ctx, "ambient-user")

		resolved, err := svc.ResolveIdentity(ambient, token)
		require.NoError(t, err)

		userID, ok := authz.ActingUserID(resolved)
		require.True(t, ok)
		assert.Equal(t, "token-user", userID)
	})

	t.Run("ambient actor without token", func(t *testing.T) {
		ambient := contexts.WithActorID(ctx, "ambient-user")

		resolved, err := svc.ResolveIdentity(ambient, "")
		require.NoError(t, err)

		userID, ok := authz.ActingUserID(resolved)
		require.True(t, ok)
		assert.Equal(t, "ambient-user", userID)
	})

	t.Run("neither stays anonymous", func(t *testing.T) {
		resolved, err := svc.ResolveIdentity(ctx, "")
		require.NoError(t, err)

		_, ok := authz.ActingUserID(resolved)
		assert.False(t, ok)
	})

	t.Run("bad token is rejected", func(t *testing.T) {
		_, err := svc.ResolveIdentity(ctx, "bogus")
		assert.ErrorIs(t, err, ErrInvalidJWT)
	})
}

func TestCurrentUserID(t *testing.T) {
	svc := NewAuthService(AuthConfig{SecretKey: "test-secret"})

	_, err := svc.CurrentUserID(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	u1 := authz.NewUserContext(context.Background(), "u1")

	userID, err := svc.CurrentUserID(u1)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}
