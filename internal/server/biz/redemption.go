package biz

import (
	"context"
	"strings"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/storage"
)

func NewRedemptionService(
	store *storage.Client,
	keys *storage.AdminKeyStore,
	profiles *storage.ProfileStore,
	admins *AdminStatusChecker,
) *RedemptionService {
	return &RedemptionService{
		AbstractService: &AbstractService{store: store},
		keys:            keys,
		profiles:        profiles,
		admins:          admins,
	}
}

// RedemptionService turns an unused admin key into admin rights for the
// redeeming user. Consuming the key and promoting the profile happen in one
// transaction, so a key is never burned without the promotion landing.
type RedemptionService struct {
	*AbstractService

	keys     *storage.AdminKeyStore
	profiles *storage.ProfileStore
	admins   *AdminStatusChecker
}

// Redeem consumes keyCode for userID. It returns true only when this call
// won the key; a used, unknown or malformed key as well as any internal
// failure collapses to false so callers cannot distinguish the cases.
func (s *RedemptionService) Redeem(ctx context.Context, keyCode, userID string) bool {
	keyCode = strings.TrimSpace(keyCode)
	if keyCode == "" || userID == "" {
		return false
	}

	_, err := authz.RunWithSystemBypass(ctx, "admin-key-redemption", func(bypassCtx context.Context) (struct{}, error) {
		return struct{}{}, s.RunInTransaction(bypassCtx, func(txCtx context.Context) error {
			claimed, err := s.keys.MarkUsed(txCtx, keyCode, userID)
			if err != nil {
				return err
			}

			if !claimed {
				return storage.ErrNotFound
			}

			return s.profiles.PromoteAdmin(txCtx, userID)
		})
	})
	if err != nil {
		if !storage.IsNotFound(err) {
			log.Error(ctx, "admin key redemption failed",
				log.String("user_id", userID),
				log.Cause(err),
			)
		}

		return false
	}

	s.admins.Invalidate(userID)

	log.Info(ctx, "admin key redeemed", log.String("user_id", userID))

	return true
}
