package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/pkg/xtime"
)

const adminKeyTable = "admin_keys"

var adminKeyColumns = []string{"key_code", "is_used", "used_by", "used_at", "created_at"}

// AdminKey is a persisted admin key record. Lifecycle: created unused, then
// transitions to used exactly once; used is terminal.
type AdminKey struct {
	KeyCode   string     `json:"key_code"`
	IsUsed    bool       `json:"is_used"`
	UsedBy    *string    `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type AdminKeyStore struct {
	client *Client
}

func NewAdminKeyStore(client *Client) *AdminKeyStore {
	return &AdminKeyStore{client: client}
}

// Seed inserts an unused key record. Inserting an existing key_code is a
// no-op; seeding is idempotent. Requires an elevated execution context.
func (s *AdminKeyStore) Seed(ctx context.Context, code string) error {
	if err := authz.RequireElevated(ctx); err != nil {
		return err
	}

	query, args := s.client.builder().
		Insert(adminKeyTable).
		Columns("key_code", "is_used", "created_at").
		Values(code, false, xtime.Now()).
		OnConflict(
			entsql.ConflictColumns("key_code"),
			entsql.DoNothing(),
		).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: seed admin key: %w", err)
	}

	return nil
}

// Get returns the key record regardless of its usage state. Requires an
// elevated execution context; unprivileged reads go through LookupUnused.
func (s *AdminKeyStore) Get(ctx context.Context, code string) (*AdminKey, error) {
	if err := authz.RequireElevated(ctx); err != nil {
		return nil, err
	}

	return s.get(ctx, entsql.EQ("key_code", code))
}

// LookupUnused returns the key record only while it is still unused.
func (s *AdminKeyStore) LookupUnused(ctx context.Context, code string) (*AdminKey, error) {
	return s.get(ctx, entsql.And(
		entsql.EQ("key_code", code),
		entsql.EQ("is_used", false),
	))
}

func (s *AdminKeyStore) get(ctx context.Context, where *entsql.Predicate) (*AdminKey, error) {
	builder := s.client.builder()
	query, args := builder.
		Select(adminKeyColumns...).
		From(builder.Table(adminKeyTable)).
		Where(where).
		Query()

	rows, err := s.client.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("storage: get admin key: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("storage: get admin key: %w", err)
		}

		return nil, ErrNotFound
	}

	var (
		k      AdminKey
		usedBy sql.NullString
		usedAt sql.NullTime
	)

	if err := rows.Scan(&k.KeyCode, &k.IsUsed, &usedBy, &usedAt, &k.CreatedAt); err != nil {
		return nil, fmt.Errorf("storage: scan admin key: %w", err)
	}

	if usedBy.Valid {
		k.UsedBy = &usedBy.String
	}

	if usedAt.Valid {
		t := usedAt.Time
		k.UsedAt = &t
	}

	return &k, nil
}

// MarkUsed atomically transitions the key from unused to used. The check and
// the transition are one statement (compare-and-swap on is_used), so of any
// number of concurrent callers exactly one wins. Returns false when the key
// is absent or already used. Requires an elevated execution context: this
// mutation is reachable only through the redemption workflow.
func (s *AdminKeyStore) MarkUsed(ctx context.Context, code, usedBy string) (bool, error) {
	if err := authz.RequireElevated(ctx); err != nil {
		return false, err
	}

	query, args := s.client.builder().
		Update(adminKeyTable).
		Set("is_used", true).
		Set("used_by", usedBy).
		Set("used_at", xtime.Now()).
		Where(entsql.And(
			entsql.EQ("key_code", code),
			entsql.EQ("is_used", false),
		)).
		Query()

	res, err := s.client.exec(ctx, query, args)
	if err != nil {
		return false, fmt.Errorf("storage: mark admin key used: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: mark admin key used: %w", err)
	}

	return affected == 1, nil
}
