package biz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/objects"
	"github.com/looplj/chirphub/internal/policy"
	"github.com/looplj/chirphub/internal/storage"
)

func NewCommentService(
	store *storage.Client,
	comments *storage.CommentStore,
	engine *policy.Engine,
) *CommentService {
	return &CommentService{
		AbstractService: &AbstractService{store: store},
		comments:        comments,
		engine:          engine,
	}
}

type CommentService struct {
	*AbstractService

	comments *storage.CommentStore
	engine   *policy.Engine
}

// Create attaches a comment to a post. The caller must be authenticated;
// the parent post does not have to be approved for commenting, only for
// reading comments back.
func (s *CommentService) Create(ctx context.Context, postID, content string) (*objects.CommentInfo, error) {
	if postID == "" || content == "" {
		return nil, ErrInvalidInput
	}

	userID, ok := actingUser(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	row := policy.Row{PostID: postID, UserID: userID}

	err := s.engine.Authorize(ctx, policy.ResourceComment, policy.ActionCreate, row)
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	comment := &storage.Comment{
		ID:      uuid.NewString(),
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	err = s.comments.Create(ctx, comment)
	if err != nil {
		log.Error(ctx, "failed to create comment", log.String("post_id", postID), log.Cause(err))

		return nil, ErrInternal
	}

	return commentInfo(comment), nil
}

// Get returns a comment when its parent post is approved.
func (s *CommentService) Get(ctx context.Context, id string) (*objects.CommentInfo, error) {
	comment, err := s.visible(ctx, id, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	return commentInfo(comment), nil
}

// ListByPost returns the comments of a post in creation order, filtered to
// the rows the caller may see.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*objects.CommentInfo, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		log.Error(ctx, "failed to list comments", log.String("post_id", postID), log.Cause(err))

		return nil, ErrInternal
	}

	visible := make([]*storage.Comment, 0, len(comments))

	for _, comment := range comments {
		row := policy.Row{ID: comment.ID, UserID: comment.UserID, PostID: comment.PostID}

		err := s.engine.Authorize(ctx, policy.ResourceComment, policy.ActionRead, row)
		if err != nil {
			if errors.Is(err, policy.ErrDenied) {
				continue
			}

			return nil, err
		}

		visible = append(visible, comment)
	}

	return lo.Map(visible, func(c *storage.Comment, _ int) *objects.CommentInfo {
		return commentInfo(c)
	}), nil
}

// Update rewrites a comment's content. Only the comment owner edits, and
// only while the parent post is still readable.
func (s *CommentService) Update(ctx context.Context, id, content string) (*objects.CommentInfo, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}

	comment, err := s.visible(ctx, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	comment.Content = content

	err = s.comments.Update(ctx, comment)
	if err != nil {
		log.Error(ctx, "failed to update comment", log.String("comment_id", id), log.Cause(err))

		return nil, ErrInternal
	}

	return commentInfo(comment), nil
}

func (s *CommentService) visible(ctx context.Context, id string, action policy.Action) (*storage.Comment, error) {
	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}

		log.Error(ctx, "failed to get comment", log.String("comment_id", id), log.Cause(err))

		return nil, ErrInternal
	}

	row := policy.Row{ID: comment.ID, UserID: comment.UserID, PostID: comment.PostID}

	err = s.engine.Authorize(ctx, policy.ResourceComment, action, row)
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return comment, nil
}

func commentInfo(c *storage.Comment) *objects.CommentInfo {
	return &objects.CommentInfo{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
