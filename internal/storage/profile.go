package storage

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/looplj/chirphub/internal/pkg/xtime"
)

const profileTable = "user_profiles"

var profileColumns = []string{"user_id", "username", "is_admin", "created_at", "updated_at"}

// Profile is a user profile row. IsAdmin is set to true by key redemption and
// never auto-reverts.
type Profile struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileStore struct {
	client *Client
}

func NewProfileStore(client *Client) *ProfileStore {
	return &ProfileStore{client: client}
}

func (s *ProfileStore) Get(ctx context.Context, userID string) (*Profile, error) {
	builder := s.client.builder()
	query, args := builder.
		Select(profileColumns...).
		From(builder.Table(profileTable)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	rows, err := s.client.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("storage: get profile: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("storage: get profile: %w", err)
		}

		return nil, ErrNotFound
	}

	var p Profile
	if err := rows.Scan(&p.UserID, &p.Username, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("storage: scan profile: %w", err)
	}

	return &p, nil
}

// IsAdmin reports the profile's admin flag. A missing profile and an
// anonymous identity both read as false.
func (s *ProfileStore) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}

		return false, err
	}

	return p.IsAdmin, nil
}

func (s *ProfileStore) Create(ctx context.Context, p *Profile) error {
	now := xtime.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query, args := s.client.builder().
		Insert(profileTable).
		Columns(profileColumns...).
		Values(p.UserID, p.Username, p.IsAdmin, p.CreatedAt, p.UpdatedAt).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: create profile: %w", err)
	}

	return nil
}

// UpsertUsername creates the profile or updates its username.
func (s *ProfileStore) UpsertUsername(ctx context.Context, userID, username string) error {
	now := xtime.Now()

	query, args := s.client.builder().
		Insert(profileTable).
		Columns(profileColumns...).
		Values(userID, username, false, now, now).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Set("username", username)
				u.Set("updated_at", now)
			}),
		).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: upsert profile: %w", err)
	}

	return nil
}

// PromoteAdmin creates the profile as admin, or flips an existing profile's
// admin flag. Idempotent: promoting an admin again only touches updated_at.
func (s *ProfileStore) PromoteAdmin(ctx context.Context, userID string) error {
	now := xtime.Now()

	query, args := s.client.builder().
		Insert(profileTable).
		Columns(profileColumns...).
		Values(userID, userID, true, now, now).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Set("is_admin", true)
				u.Set("updated_at", now)
			}),
		).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: promote profile: %w", err)
	}

	return nil
}
