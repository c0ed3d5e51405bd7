package access

import (
	"context"

	"github.com/looplj/chirphub/internal/policy"
	"github.com/looplj/chirphub/internal/storage"
)

func registerCommentRules(registry *policy.Registry, posts PostChecker) {
	registry.Register(policy.ResourceComment, policy.ActionRead,
		OnApprovedPostRule(posts),
	)

	registry.Register(policy.ResourceComment, policy.ActionCreate,
		AuthenticatedRule(),
	)

	registry.Register(policy.ResourceComment, policy.ActionUpdate,
		OwnerRule("owner-update"),
	)
}

// OnApprovedPostRule allows reading rows whose parent post is approved.
// A dangling parent reference skips (and therefore denies); a failed lookup
// propagates and fails closed.
func OnApprovedPostRule(posts PostChecker) policy.Rule {
	return policy.NewRule("on-approved-post", func(ctx context.Context, row policy.Row) error {
		status, found, err := posts.PostStatus(ctx, row.PostID)
		if err != nil {
			return err
		}

		if !found {
			return policy.Skipf("parent post does not exist")
		}

		if status == string(storage.PostStatusApproved) {
			return policy.Allow
		}

		return policy.Skipf("parent post is not approved")
	})
}
