package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/storage"
)

func TestReactionLifecycle(t *testing.T) {
	svc := newTestServices(t)
	owner := authz.NewUserContext(context.Background(), "u1")
	fan := authz.NewUserContext(context.Background(), "u2")

	post, err := svc.posts.Create(owner, "hello")
	require.NoError(t, err)

	for _, kind := range []storage.ReactionKind{storage.ReactionLike, storage.ReactionRetweet} {
		reaction, err := svc.reactions.Create(fan, kind, post.ID)
		require.NoError(t, err)
		assert.Equal(t, string(kind), reaction.Kind)
		assert.Equal(t, "u2", reaction.UserID)

		// Reactions are public reads.
		got, err := svc.reactions.Get(context.Background(), kind, reaction.ID)
		require.NoError(t, err)
		assert.Equal(t, reaction.ID, got.ID)

		// Only the owner undoes a reaction.
		assert.ErrorIs(t, svc.reactions.Delete(owner, kind, reaction.ID), ErrNotFound)
		require.NoError(t, svc.reactions.Delete(fan, kind, reaction.ID))

		_, err = svc.reactions.Get(fan, kind, reaction.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestReactionCreateValidation(t *testing.T) {
	svc := newTestServices(t)
	fan := authz.NewUserContext(context.Background(), "u2")

	_, err := svc.reactions.Create(context.Background(), storage.ReactionLike, "p1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.reactions.Create(fan, storage.ReactionKind("star"), "p1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.reactions.Create(fan, storage.ReactionLike, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
