package storage

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/looplj/chirphub/internal/pkg/xtime"
)

const commentTable = "comments"

var commentColumns = []string{"id", "post_id", "user_id", "content", "created_at", "updated_at"}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentStore struct {
	client *Client
}

func NewCommentStore(client *Client) *CommentStore {
	return &CommentStore{client: client}
}

func (s *CommentStore) Create(ctx context.Context, c *Comment) error {
	now := xtime.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query, args := s.client.builder().
		Insert(commentTable).
		Columns(commentColumns...).
		Values(c.ID, c.PostID, c.UserID, c.Content, c.CreatedAt, c.UpdatedAt).
		Query()

	if _, err := s.client.exec(ctx, query, args); err != nil {
		return fmt.Errorf("storage: create comment: %w", err)
	}

	return nil
}

func (s *CommentStore) Get(ctx context.Context, id string) (*Comment, error) {
	comments, err := s.list(ctx, entsql.EQ("id", id))
	if err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		return nil, ErrNotFound
	}

	return comments[0], nil
}

// ListByPost returns the comments of a post, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID string) ([]*Comment, error) {
	return s.list(ctx, entsql.EQ("post_id", postID))
}

func (s *CommentStore) list(ctx context.Context, where *entsql.Predicate) ([]*Comment, error) {
	builder := s.client.builder()
	query, args := builder.
		Select(commentColumns...).
		From(builder.Table(commentTable)).
		Where(where).
		OrderBy("created_at").
		Query()

	rows, err := s.client.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("storage: list comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment

	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("storage: scan comment: %w", err)
		}

		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list comments: %w", err)
	}

	return comments, nil
}

func (s *CommentStore) Update(ctx context.Context, c *Comment) error {
	c.UpdatedAt = xtime.Now()

	query, args := s.client.builder().
		Update(commentTable).
		Set("content", c.Content).
		Set("updated_at", c.UpdatedAt).
		Where(entsql.EQ("id", c.ID)).
		Query()

	res, err := s.client.exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("storage: update comment: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}
