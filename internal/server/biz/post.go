package biz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/objects"
	"github.com/looplj/chirphub/internal/policy"
	"github.com/looplj/chirphub/internal/storage"
)

func NewPostService(
	store *storage.Client,
	posts *storage.PostStore,
	admins *AdminStatusChecker,
	engine *policy.Engine,
) *PostService {
	return &PostService{
		AbstractService: &AbstractService{store: store},
		posts:           posts,
		admins:          admins,
		engine:          engine,
	}
}

type PostService struct {
	*AbstractService

	posts  *storage.PostStore
	admins *AdminStatusChecker
	engine *policy.Engine
}

// Create stores a new post owned by the caller. New posts always start
// pending; moderation moves them on.
func (s *PostService) Create(ctx context.Context, content string) (*objects.PostInfo, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}

	userID, ok := actingUser(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	row := policy.Row{UserID: userID, Status: string(storage.PostStatusPending)}

	err := s.engine.Authorize(ctx, policy.ResourcePost, policy.ActionCreate, row)
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	post := &storage.Post{
		ID:      uuid.NewString(),
		UserID:  userID,
		Status:  storage.PostStatusPending,
		Content: content,
	}

	err = s.posts.Create(ctx, post)
	if err != nil {
		log.Error(ctx, "failed to create post", log.Cause(err))

		return nil, ErrInternal
	}

	return postInfo(post), nil
}

// Get returns a post the caller is allowed to see. A denied row and an
// absent row are indistinguishable.
func (s *PostService) Get(ctx context.Context, id string) (*objects.PostInfo, error) {
	post, err := s.visible(ctx, id, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	return postInfo(post), nil
}

// Update rewrites the content of a post the caller may edit.
func (s *PostService) Update(ctx context.Context, id, content string) (*objects.PostInfo, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.visible(ctx, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	post.Content = content

	err = s.posts.Update(ctx, post)
	if err != nil {
		log.Error(ctx, "failed to update post", log.String("post_id", id), log.Cause(err))

		return nil, ErrInternal
	}

	return postInfo(post), nil
}

// Moderate moves a post to a new moderation status. Only admins moderate,
// regardless of ownership.
func (s *PostService) Moderate(ctx context.Context, id string, status storage.PostStatus) (*objects.PostInfo, error) {
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	userID, ok := actingUser(ctx)
	if !ok {
		return nil, ErrNotFound
	}

	isAdmin, err := s.admins.IsAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		return nil, ErrNotFound
	}

	post, err := s.visible(ctx, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}

	post.Status = status

	err = s.posts.Update(ctx, post)
	if err != nil {
		log.Error(ctx, "failed to moderate post", log.String("post_id", id), log.Cause(err))

		return nil, ErrInternal
	}

	log.Info(ctx, "post moderated",
		log.String("post_id", id),
		log.String("status", string(status)),
	)

	return postInfo(post), nil
}

// Delete removes a post. Deletion is admin-only.
func (s *PostService) Delete(ctx context.Context, id string) error {
	_, err := s.visible(ctx, id, policy.ActionDelete)
	if err != nil {
		return err
	}

	err = s.posts.Delete(ctx, id)
	if err != nil {
		log.Error(ctx, "failed to delete post", log.String("post_id", id), log.Cause(err))

		return ErrInternal
	}

	return nil
}

// visible loads a post and authorizes the action against its row, mapping a
// denial to ErrNotFound.
func (s *PostService) visible(ctx context.Context, id string, action policy.Action) (*storage.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}

		log.Error(ctx, "failed to get post", log.String("post_id", id), log.Cause(err))

		return nil, ErrInternal
	}

	row := policy.Row{ID: post.ID, UserID: post.UserID, Status: string(post.Status)}

	err = s.engine.Authorize(ctx, policy.ResourcePost, action, row)
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return post, nil
}

func postInfo(p *storage.Post) *objects.PostInfo {
	return &objects.PostInfo{
		ID:        p.ID,
		UserID:    p.UserID,
		Content:   p.Content,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
