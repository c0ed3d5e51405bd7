package authz

import (
	"context"
)

// NewTestContext creates a context with the Test principal (only for the
// test environment).
func NewTestContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{Type: PrincipalTypeTest})
}

// WithTestBypass creates a context with the Test principal and policy bypass.
// Used to replace policy.DecisionContext(ctx, policy.Allow) in tests.
func WithTestBypass(ctx context.Context) context.Context {
	bypassCtx, _ := WithBypassPrivacy(NewTestContext(ctx), "test")
	return bypassCtx
}
