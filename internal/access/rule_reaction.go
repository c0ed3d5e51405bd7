package access

import (
	"context"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/policy"
)

func registerReactionRules(registry *policy.Registry) {
	for _, resource := range []policy.Resource{policy.ResourceLike, policy.ResourceRetweet} {
		registry.Register(resource, policy.ActionRead,
			AllVisibleRule(),
		)

		registry.Register(resource, policy.ActionCreate,
			AuthenticatedRule(),
		)

		registry.Register(resource, policy.ActionUpdate,
			OwnerRule("owner-only"),
		)

		registry.Register(resource, policy.ActionDelete,
			OwnerRule("owner-only"),
		)
	}
}

// AuthenticatedRule allows any non-anonymous identity.
func AuthenticatedRule() policy.Rule {
	return policy.NewRule("authenticated", func(ctx context.Context, row policy.Row) error {
		if _, ok := authz.ActingUserID(ctx); ok {
			return policy.Allow
		}

		return policy.Skipf("anonymous viewer")
	})
}
