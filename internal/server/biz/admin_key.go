package biz

import (
	"context"
	"errors"
	"strings"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/policy"
	"github.com/looplj/chirphub/internal/storage"
)

func NewAdminKeyService(
	store *storage.Client,
	keys *storage.AdminKeyStore,
	engine *policy.Engine,
) *AdminKeyService {
	return &AdminKeyService{
		AbstractService: &AbstractService{store: store},
		keys:            keys,
		engine:          engine,
	}
}

type AdminKeyService struct {
	*AbstractService

	keys   *storage.AdminKeyStore
	engine *policy.Engine
}

// Seed inserts the given key codes, skipping codes that already exist. Used
// keys are never reset.
func (s *AdminKeyService) Seed(ctx context.Context, codes []string) error {
	_, err := authz.RunWithSystemBypass(ctx, "admin-key-seeding", func(bypassCtx context.Context) (struct{}, error) {
		for _, code := range codes {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}

			if err := s.keys.Seed(bypassCtx, code); err != nil {
				return struct{}{}, err
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		log.Error(ctx, "failed to seed admin keys", log.Cause(err))

		return ErrInternal
	}

	if len(codes) > 0 {
		log.Info(ctx, "admin keys seeded", log.Int("count", len(codes)))
	}

	return nil
}

// Exists reports whether an unused key with this code is visible to the
// caller. A consumed key reads as absent.
func (s *AdminKeyService) Exists(ctx context.Context, code string) (bool, error) {
	key, err := authz.RunWithSystemBypass(ctx, "admin-key-lookup", func(bypassCtx context.Context) (*storage.AdminKey, error) {
		return s.keys.Get(bypassCtx, code)
	})
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}

		log.Error(ctx, "failed to look up admin key", log.Cause(err))

		return false, ErrInternal
	}

	row := policy.Row{ID: key.KeyCode, IsUsed: key.IsUsed}

	err = s.engine.Authorize(ctx, policy.ResourceAdminKey, policy.ActionRead, row)
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
