package storage

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/looplj/chirphub/internal/pkg/xtime"
)

// ReactionKind selects between the structurally identical likes and retweets
// tables.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionRetweet ReactionKind = "retweet"
)

// Valid reports whether the kind is known.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionRetweet
}

func (k ReactionKind) table() string {
	if k == ReactionRetweet {
		return "retweets"
	}

	return "likes"
}

var reactionColumns = []string{"id", "post_id", "user_id", "created_at"}

type Reaction struct {
	ID        string       `json:"id"`
	Kind      ReactionKind `json:"kind"`
	PostID    string       `json:"post_id"`
	UserID    string       `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
}

type ReactionStore struct {
	client *Client
}

func NewReactionStore(client *Client) *ReactionStore {
	return &ReactionStore{client: client}
}

func (s *ReactionStore) Create(ctx context.Context, r *Reaction) error {
	if !r.Kind.Valid() {
		return fmt.Errorf("storage: invalid reaction kind: %q", r.Kind)
	}

	r.CreatedAt = xtime.Now()

	query, args := s.client.builder().
		Insert(r.Kind.table()).
		Columns(reactionColumns...).
		Values(r.ID, r.PostID, r.UserID, r.CreatedAt).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: create %s: %w", r.Kind, err)
	}

	return nil
}

func (s *ReactionStore) Get(ctx context.Context, kind ReactionKind, id string) (*Reaction, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("storage: invalid reaction kind: %q", kind)
	}

	builder := s.client.builder()
	query, args := builder.
		Select(reactionColumns...).
		From(builder.Table(kind.table())).
		Where(entsql.EQ("id", id)).
		Query()

	rows, err := s.client.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", kind, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("storage: get %s: %w", kind, err)
		}

		return nil, ErrNotFound
	}

	r := Reaction{Kind: kind}
	if err := rows.Scan(&r.ID, &r.PostID, &r.UserID, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("storage: scan %s: %w", kind, err)
	}

	return &r, nil
}

func (s *ReactionStore) Delete(ctx context.Context, kind ReactionKind, id string) error {
	if !kind.Valid() {
		return fmt.Errorf("storage: invalid reaction kind: %q", kind)
	}

	query, args := s.client.builder().
		Delete(kind.table()).
		Where(entsql.EQ("id", id)).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: delete %s: %w", kind, err)
	}

	return nil
}
