package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/storage"
)

func TestCommentVisibilityFollowsParentPost(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")
	reader := authz.NewUserContext(context.Background(), "u2")

	post, err := svc.posts.Create(owner, "parent")
	require.NoError(t, err)

	comment, err := svc.comments.Create(reader, post.ID, "first")
	require.NoError(t, err)

	// Parent still pending: nobody reads the comment back, not even its
	// author.
	_, err = svc.comments.Get(reader, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	adminCtx := promoteAdmin(t, svc, "mod")
	_, err = svc.posts.Moderate(adminCtx, post.ID, storage.PostStatusApproved)
	require.NoError(t, err)

	got, err := svc.comments.Get(context.Background(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)
}

func TestCommentCreateRequiresIdentity(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")

	post, err := svc.posts.Create(owner, "parent")
	require.NoError(t, err)

	_, err = svc.comments.Create(context.Background(), post.ID, "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCommentListFiltersByParentStatus(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")

	pending, err := svc.posts.Create(owner, "pending parent")
	require.NoError(t, err)

	approvedPost, err := svc.posts.Create(owner, "approved parent")
	require.NoError(t, err)

	adminCtx := promoteAdmin(t, svc, "mod")
	_, err = svc.posts.Moderate(adminCtx, approvedPost.ID, storage.PostStatusApproved)
	require.NoError(t, err)

	_, err = svc.comments.Create(owner, pending.ID, "hidden")
	require.NoError(t, err)

	first, err := svc.comments.Create(owner, approvedPost.ID, "one")
	require.NoError(t, err)

	second, err := svc.comments.Create(owner, approvedPost.ID, "two")
	require.NoError(t, err)

	hidden, err := svc.comments.ListByPost(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Empty(t, hidden)

	visible, err := svc.comments.ListByPost(context.Background(), approvedPost.ID)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, first.ID, visible[0].ID)
	assert.Equal(t, second.ID, visible[1].ID)
}

func TestCommentUpdateOwnerOnly(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")
	author := authz.NewUserContext(context.Background(), "u2")

	post, err := svc.posts.Create(owner, "parent")
	require.NoError(t, err)

	comment, err := svc.comments.Create(author, post.ID, "v1")
	require.NoError(t, err)

	updated, err := svc.comments.Update(author, comment.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	_, err = svc.comments.Update(owner, comment.ID, "v3")
	assert.ErrorIs(t, err, ErrNotFound)
}
