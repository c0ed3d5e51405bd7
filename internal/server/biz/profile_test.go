package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/chirphub/internal/authz"
)

func TestProfileUpsertSelf(t *testing.T) {
	svc := newTestServices(t)
	u1 := authz.NewUserContext(context.Background(), "u1")

	profile, err := svc.profiles.UpsertSelf(u1, "u1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.False(t, profile.IsAdmin)

	profile, err = svc.profiles.UpsertSelf(u1, "u1", "alice2")
	require.NoError(t, err)
	assert.Equal(t, "alice2", profile.Username)
}

func TestProfileUpsertOtherDenied(t *testing.T) {
	svc := newTestServices(t)
	u1 := authz.NewUserContext(context.Background(), "u1")

	_, err := svc.profiles.UpsertSelf(u1, "u2", "mallory")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.profiles.UpsertSelf(context.Background(), "u2", "mallory")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProfilePubliclyReadable(t *testing.T) {
	svc := newTestServices(t)
	u1 := authz.NewUserContext(context.Background(), "u1")

	_, err := svc.profiles.UpsertSelf(u1, "u1", "alice")
	require.NoError(t, err)

	profile, err := svc.profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	_, err = svc.profiles.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsAdminDefaultsToActingIdentity(t *testing.T) {
	svc := newTestServices(t)

	isAdmin, err := svc.profiles.IsAdmin(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	adminCtx := promoteAdmin(t, svc, "mod")

	isAdmin, err = svc.profiles.IsAdmin(adminCtx, "")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.profiles.IsAdmin(adminCtx, "someone-else")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
