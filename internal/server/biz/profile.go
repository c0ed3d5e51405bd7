package biz

import (
	"context"
	"errors"

	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/objects"
	"github.com/looplj/chirphub/internal/policy"
	"github.com/looplj/chirphub/internal/storage"
)

func NewProfileService(
	store *storage.Client,
	profiles *storage.ProfileStore,
	admins *AdminStatusChecker,
	engine *policy.Engine,
) *ProfileService {
	return &ProfileService{
		AbstractService: &AbstractService{store: store},
		profiles:        profiles,
		admins:          admins,
		engine:          engine,
	}
}

type ProfileService struct {
	*AbstractService

	profiles *storage.ProfileStore
	admins   *AdminStatusChecker
	engine   *policy.Engine
}

// Get returns a profile. Profiles are publicly readable, so the authorize
// step here guards against future rule changes rather than hiding rows.
func (s *ProfileService) Get(ctx context.Context, userID string) (*objects.ProfileInfo, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}

		log.Error(ctx, "failed to get profile", log.String("user_id", userID), log.Cause(err))

		return nil, ErrInternal
	}

	err = s.engine.Authorize(ctx, policy.ResourceProfile, policy.ActionRead, policy.Row{UserID: profile.UserID})
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return profileInfo(profile), nil
}

// UpsertSelf creates or updates the caller's own profile row. The admin flag
// is never writable through this path.
func (s *ProfileService) UpsertSelf(ctx context.Context, userID, username string) (*objects.ProfileInfo, error) {
	if userID == "" || username == "" {
		return nil, ErrInvalidInput
	}

	err := s.engine.Authorize(ctx, policy.ResourceProfile, policy.ActionUpdate, policy.Row{UserID: userID})
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	err = s.profiles.UpsertUsername(ctx, userID, username)
	if err != nil {
		log.Error(ctx, "failed to upsert profile", log.String("user_id", userID), log.Cause(err))

		return nil, ErrInternal
	}

	return s.Get(ctx, userID)
}

// IsAdmin reports the admin status of the given user, defaulting to the
// acting identity when userID is empty. Unknown users are not admins.
func (s *ProfileService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		var ok bool

		userID, ok = actingUser(ctx)
		if !ok {
			return false, nil
		}
	}

	return s.admins.IsAdmin(ctx, userID)
}

func profileInfo(p *storage.Profile) *objects.ProfileInfo {
	return &objects.ProfileInfo{
		UserID:    p.UserID,
		Username:  p.Username,
		IsAdmin:   p.IsAdmin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
