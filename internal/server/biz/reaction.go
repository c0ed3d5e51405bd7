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

func NewReactionService(
	store *storage.Client,
	reactions *storage.ReactionStore,
	engine *policy.Engine,
) *ReactionService {
	return &ReactionService{
		AbstractService: &AbstractService{store: store},
		reactions:       reactions,
		engine:          engine,
	}
}

// ReactionService covers likes and retweets. The two share one rule shape:
// readable by anyone, created by any authenticated user, removed only by
// their owner.
type ReactionService struct {
	*AbstractService

	reactions *storage.ReactionStore
	engine    *policy.Engine
}

func reactionResource(kind storage.ReactionKind) (policy.Resource, error) {
	switch kind {
	case storage.ReactionLike:
		return policy.ResourceLike, nil
	case storage.ReactionRetweet:
		return policy.ResourceRetweet, nil
	default:
		return "", ErrInvalidInput
	}
}

// Create records a reaction on a post by the caller.
func (s *ReactionService) Create(ctx context.Context, kind storage.ReactionKind, postID string) (*objects.ReactionInfo, error) {
	resource, err := reactionResource(kind)
	if err != nil {
		return nil, err
	}

	if postID == "" {
		return nil, ErrInvalidInput
	}

	userID, ok := actingUser(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	row := policy.Row{PostID: postID, UserID: userID}

	err = s.engine.Authorize(ctx, resource, policy.ActionCreate, row)
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	reaction := &storage.Reaction{
		ID:     uuid.NewString(),
		Kind:   kind,
		PostID: postID,
		UserID: userID,
	}

	err = s.reactions.Create(ctx, reaction)
	if err != nil {
		log.Error(ctx, "failed to create reaction",
			log.String("kind", string(kind)),
			log.String("post_id", postID),
			log.Cause(err),
		)

		return nil, ErrInternal
	}

	return reactionInfo(reaction), nil
}

// Get returns a reaction by id.
func (s *ReactionService) Get(ctx context.Context, kind storage.ReactionKind, id string) (*objects.ReactionInfo, error) {
	reaction, err := s.visible(ctx, kind, id, policy.ActionRead)
	if err != nil {
		return nil, err
	}

	return reactionInfo(reaction), nil
}

// Delete removes a reaction. Only its owner may undo it.
func (s *ReactionService) Delete(ctx context.Context, kind storage.ReactionKind, id string) error {
	reaction, err := s.visible(ctx, kind, id, policy.ActionDelete)
	if err != nil {
		return err
	}

	err = s.reactions.Delete(ctx, kind, reaction.ID)
	if err != nil {
		log.Error(ctx, "failed to delete reaction",
			log.String("kind", string(kind)),
			log.String("reaction_id", id),
			log.Cause(err),
		)

		return ErrInternal
	}

	return nil
}

func (s *ReactionService) visible(ctx context.Context, kind storage.ReactionKind, id string, action policy.Action) (*storage.Reaction, error) {
	resource, err := reactionResource(kind)
	if err != nil {
		return nil, err
	}

	reaction, err := s.reactions.Get(ctx, kind, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}

		log.Error(ctx, "failed to get reaction",
			log.String("kind", string(kind)),
			log.String("reaction_id", id),
			log.Cause(err),
		)

		return nil, ErrInternal
	}

	row := policy.Row{ID: reaction.ID, UserID: reaction.UserID, PostID: reaction.PostID}

	err = s.engine.Authorize(ctx, resource, action, row)
	if err != nil {
		if errors.Is(err, policy.ErrDenied) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return reaction, nil
}

func reactionInfo(r *storage.Reaction) *objects.ReactionInfo {
	return &objects.ReactionInfo{
		ID:        r.ID,
		PostID:    r.PostID,
		UserID:    r.UserID,
		Kind:      string(r.Kind),
		CreatedAt: r.CreatedAt,
	}
}
