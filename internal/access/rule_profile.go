package access

import (
	"context"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/policy"
)

func registerProfileRules(registry *policy.Registry) {
	registry.Register(policy.ResourceProfile, policy.ActionRead,
		AllVisibleRule(),
	)

	registry.Register(policy.ResourceProfile, policy.ActionCreate,
		SelfOnlyRule(),
	)

	registry.Register(policy.ResourceProfile, policy.ActionUpdate,
		SelfOnlyRule(),
	)
}

// AllVisibleRule allows everyone, including anonymous viewers.
func AllVisibleRule() policy.Rule {
	return policy.NewRule("all-visible", func(ctx context.Context, row policy.Row) error {
		return policy.Allow
	})
}

// SelfOnlyRule allows an identity to touch only its own profile row. The
// admin flag is not writable through this path; promotion happens solely in
// the redemption workflow.
func SelfOnlyRule() policy.Rule {
	return policy.NewRule("self-only", func(ctx context.Context, row policy.Row) error {
		viewer, ok := authz.ActingUserID(ctx)
		if !ok {
			return policy.Skipf("anonymous viewer")
		}

		if row.UserID == viewer {
			return policy.Allow
		}

		return policy.Skipf("profile belongs to another user")
	})
}
