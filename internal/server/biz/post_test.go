package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/storage"
)

func TestPostLifecycleVisibility(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")
	stranger := authz.NewUserContext(context.Background(), "u2")
	anonymous := context.Background()

	post, err := svc.posts.Create(owner, "hello world")
	require.NoError(t, err)
	assert.Equal(t, string(storage.PostStatusPending), post.Status)

	// Pending: only the owner sees it.
	_, err = svc.posts.Get(owner, post.ID)
	assert.NoError(t, err)

	_, err = svc.posts.Get(stranger, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.posts.Get(anonymous, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Approval opens it up to everyone.
	adminCtx := promoteAdmin(t, svc, "mod")

	approved, err := svc.posts.Moderate(adminCtx, post.ID, storage.PostStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, string(storage.PostStatusApproved), approved.Status)

	_, err = svc.posts.Get(anonymous, post.ID)
	assert.NoError(t, err)
}

func TestPostCreateRequiresIdentity(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.posts.Create(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.posts.Create(authz.NewUserContext(context.Background(), "u1"), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostUpdateOwnership(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")
	stranger := authz.NewUserContext(context.Background(), "u2")

	post, err := svc.posts.Create(owner, "v1")
	require.NoError(t, err)

	updated, err := svc.posts.Update(owner, post.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	_, err = svc.posts.Update(stranger, post.ID, "v3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostModerateRequiresAdmin(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")

	post, err := svc.posts.Create(owner, "hello")
	require.NoError(t, err)

	// Owners cannot approve their own posts.
	_, err = svc.posts.Moderate(owner, post.ID, storage.PostStatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.posts.Moderate(context.Background(), post.ID, storage.PostStatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.posts.Moderate(owner, post.ID, storage.PostStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostDeleteAdminOnly(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")

	post, err := svc.posts.Create(owner, "hello")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.posts.Delete(owner, post.ID), ErrNotFound)

	adminCtx := promoteAdmin(t, svc, "mod")
	require.NoError(t, svc.posts.Delete(adminCtx, post.ID))

	_, err = svc.posts.Get(adminCtx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// promoteAdmin redeems a fresh key for userID and returns their context.
func promoteAdmin(t *testing.T, svc *testServices, userID string) context.Context {
	t.Helper()

	code := "ADMIN-" + userID

	require.NoError(t, svc.adminKeys.Seed(context.Background(), []string{code}))

	ctx := authz.NewUserContext(context.Background(), userID)
	require.True(t, svc.redemption.Redeem(ctx, code, userID))

	return ctx
}
