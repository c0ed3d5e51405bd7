package access

import (
	"context"

	"github.com/looplj/chirphub/internal/policy"
)

func registerAdminKeyRules(registry *policy.Registry) {
	registry.Register(policy.ResourceAdminKey, policy.ActionRead,
		UnusedOnlyRule(),
	)

	// No rules for create, update or delete: admin keys are mutated only by
	// the redemption workflow under an elevated bypass, never through a
	// general predicate.
}

// UnusedOnlyRule allows reading a key only while it is unused. Consumed keys
// are indistinguishable from absent ones.
func UnusedOnlyRule() policy.Rule {
	return policy.NewRule("unused-only", func(ctx context.Context, row policy.Row) error {
		if !row.IsUsed {
			return policy.Allow
		}

		return policy.Skipf("key already used")
	})
}
