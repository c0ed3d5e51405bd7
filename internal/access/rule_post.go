package access

import (
	"context"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/policy"
	"github.com/looplj/chirphub/internal/storage"
)

func registerPostRules(registry *policy.Registry, admins AdminChecker) {
	registry.Register(policy.ResourcePost, policy.ActionRead,
		ApprovedVisibleRule(),
		OwnerRule("owner-visible"),
		AdminRule("admin-visible", admins),
	)

	registry.Register(policy.ResourcePost, policy.ActionCreate,
		OwnerCreateRule(),
	)

	// Admin rules are additive: an admin who owns the row passes through
	// either rule, and losing ownership would not remove admin access.
	registry.Register(policy.ResourcePost, policy.ActionUpdate,
		OwnerRule("owner-update"),
		AdminRule("admin-update", admins),
	)

	registry.Register(policy.ResourcePost, policy.ActionDelete,
		AdminRule("admin-delete", admins),
	)
}

// ApprovedVisibleRule allows reading rows whose moderation status is
// approved, regardless of identity.
func ApprovedVisibleRule() policy.Rule {
	return policy.NewRule("approved-visible", func(ctx context.Context, row policy.Row) error {
		if row.Status == string(storage.PostStatusApproved) {
			return policy.Allow
		}

		return policy.Skipf("post is not approved")
	})
}

// OwnerRule allows the row's owner.
func OwnerRule(name string) policy.Rule {
	return policy.NewRule(name, func(ctx context.Context, row policy.Row) error {
		viewer, ok := authz.ActingUserID(ctx)
		if !ok {
			return policy.Skipf("anonymous viewer")
		}

		if row.UserID != "" && row.UserID == viewer {
			return policy.Allow
		}

		return policy.Skipf("viewer does not own the row")
	})
}

// OwnerCreateRule allows an authenticated identity to create rows it owns.
func OwnerCreateRule() policy.Rule {
	return policy.NewRule("owner-create", func(ctx context.Context, row policy.Row) error {
		viewer, ok := authz.ActingUserID(ctx)
		if !ok {
			return policy.Skipf("anonymous viewer")
		}

		if row.UserID == viewer {
			return policy.Allow
		}

		return policy.Skipf("row owner differs from viewer")
	})
}

// AdminRule allows administrators. Admin-status lookup failures propagate as
// evaluation faults and fail closed.
func AdminRule(name string, admins AdminChecker) policy.Rule {
	return policy.NewRule(name, func(ctx context.Context, row policy.Row) error {
		viewer, ok := authz.ActingUserID(ctx)
		if !ok {
			return policy.Skipf("anonymous viewer")
		}

		isAdmin, err := admins.IsAdmin(ctx, viewer)
		if err != nil {
			return err
		}

		if isAdmin {
			return policy.Allow
		}

		return policy.Skipf("viewer is not an admin")
	})
}
