package storage

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/looplj/chirphub/internal/pkg/xtime"
)

// PostStatus is the moderation status of a post.
type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
)

// Valid reports whether the status is a known moderation state.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusPending, PostStatusApproved, PostStatusRejected:
		return true
	default:
		return false
	}
}

const postTable = "posts"

var postColumns = []string{"id", "user_id", "status", "content", "created_at", "updated_at"}

// Post is a content row. Ownership never transfers.
type Post struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Status    PostStatus `json:"status"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type PostStore struct {
	client *Client
}

func NewPostStore(client *Client) *PostStore {
	return &PostStore{client: client}
}

func (s *PostStore) Create(ctx context.Context, p *Post) error {
	now := xtime.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if p.Status == "" {
		p.Status = PostStatusPending
	}

	query, args := s.client.builder().
		Insert(postTable).
		Columns(postColumns...).
		Values(p.ID, p.UserID, string(p.Status), p.Content, p.CreatedAt, p.UpdatedAt).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: create post: %w", err)
	}

	return nil
}

func (s *PostStore) Get(ctx context.Context, id string) (*Post, error) {
	builder := s.client.builder()
	query, args := builder.
		Select(postColumns...).
		From(builder.Table(postTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rows, err := s.client.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("storage: get post: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("storage: get post: %w", err)
		}

		return nil, ErrNotFound
	}

	var p Post
	if err := rows.Scan(&p.ID, &p.UserID, &p.Status, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("storage: scan post: %w", err)
	}

	return &p, nil
}

// PostStatus returns the moderation status of the post, with found=false for
// a missing row. Comment visibility rules resolve parent posts through this.
func (s *PostStore) PostStatus(ctx context.Context, postID string) (string, bool, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		if IsNotFound(err) {
			return "", false, nil
		}

		return "", false, err
	}

	return string(p.Status), true, nil
}

func (s *PostStore) Update(ctx context.Context, p *Post) error {
	p.UpdatedAt = xtime.Now()

	query, args := s.client.builder().
		Update(postTable).
		Set("status", string(p.Status)).
		Set("content", p.Content).
		Set("updated_at", p.UpdatedAt).
		Where(entsql.EQ("id", p.ID)).
		Query()

	res, err := s.client.exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("storage: update post: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	query, args := s.client.builder().
		Delete(postTable).
		Where(entsql.EQ("id", id)).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: delete post: %w", err)
	}

	return nil
}
