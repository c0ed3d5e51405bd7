package biz

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/looplj/chirphub/internal/authz"
)

func TestRedeemPromotesWinnerOnly(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, svc.adminKeys.Seed(ctx, []string{"X145-GTHY-LKHA"}))

	u1 := authz.NewUserContext(ctx, "u1")
	u2 := authz.NewUserContext(ctx, "u2")

	assert.True(t, svc.redemption.Redeem(u1, "X145-GTHY-LKHA", "u1"))

	isAdmin, err := svc.profiles.IsAdmin(u1, "u1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// The same code fails for a second user and leaves them untouched.
	assert.False(t, svc.redemption.Redeem(u2, "X145-GTHY-LKHA", "u2"))

	isAdmin, err = svc.profiles.IsAdmin(u2, "u2")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = svc.profiles.Get(u2, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemUnknownOrBlankKey(t *testing.T) {
	svc := newTestServices(t)
	u1 := authz.NewUserContext(context.Background(), "u1")

	assert.False(t, svc.redemption.Redeem(u1, "NO-SUCH-KEY", "u1"))
	assert.False(t, svc.redemption.Redeem(u1, "   ", "u1"))
	assert.False(t, svc.redemption.Redeem(u1, "", "u1"))

	isAdmin, err := svc.profiles.IsAdmin(u1, "u1")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestRedeemPreservesExistingUsername(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	u1 := authz.NewUserContext(ctx, "u1")

	_, err := svc.profiles.UpsertSelf(u1, "u1", "alice")
	require.NoError(t, err)

	require.NoError(t, svc.adminKeys.Seed(ctx, []string{"K1"}))
	require.True(t, svc.redemption.Redeem(u1, "K1", "u1"))

	profile, err := svc.profiles.Get(u1, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.True(t, profile.IsAdmin)
}

func TestRedeemConcurrentSingleWinner(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, svc.adminKeys.Seed(ctx, []string{"RACE-KEY"}))

	var wins atomic.Int64

	var g errgroup.Group

	for i := 0; i < 8; i++ {
		userID := string(rune('a' + i))

		g.Go(func() error {
			userCtx := authz.NewUserContext(context.Background(), userID)
			if svc.redemption.Redeem(userCtx, "RACE-KEY", userID) {
				wins.Add(1)
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int64(1), wins.Load())
}

func TestRedeemedKeyReadsAsAbsent(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	u1 := authz.NewUserContext(ctx, "u1")

	require.NoError(t, svc.adminKeys.Seed(ctx, []string{"K1"}))

	exists, err := svc.adminKeys.Exists(u1, "K1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.True(t, svc.redemption.Redeem(u1, "K1", "u1"))

	exists, err = svc.adminKeys.Exists(u1, "K1")
	require.NoError(t, err)
	assert.False(t, exists)
}
