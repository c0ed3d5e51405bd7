package biz

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/storage"
)

const adminStatusTTL = 30 * time.Second

func NewAdminStatusChecker(profiles *storage.ProfileStore) *AdminStatusChecker {
	return &AdminStatusChecker{
		profiles: profiles,
		cache:    gocache.New(adminStatusTTL, 2*adminStatusTTL),
	}
}

// AdminStatusChecker answers admin lookups for the rule set. Results are
// cached briefly; promotion invalidates the entry so a freshly redeemed
// admin sees their rights on the next call.
type AdminStatusChecker struct {
	profiles *storage.ProfileStore
	cache    *gocache.Cache
}

func (c *AdminStatusChecker) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	if cached, ok := c.cache.Get(userID); ok {
		isAdmin, _ := cached.(bool)

		return isAdmin, nil
	}

	isAdmin, err := authz.RunWithSystemBypass(ctx, "admin-status-lookup", func(bypassCtx context.Context) (bool, error) {
		return c.profiles.IsAdmin(bypassCtx, userID)
	})
	if err != nil {
		return false, err
	}

	c.cache.SetDefault(userID, isAdmin)

	return isAdmin, nil
}

// Invalidate drops the cached status for a user.
func (c *AdminStatusChecker) Invalidate(userID string) {
	c.cache.Delete(userID)
}
