// Package policy implements row-level authorization: a versioned registry of
// named rules per (resource, action) and an engine that combines them.
//
// Rules return one of three verdicts: Allow, Deny or Skip. The engine grants
// an operation when any matching rule allows it; if every rule skips, or no
// rule is registered, the result is a denial. Any other error returned by a
// rule is an evaluation fault and propagates to the caller, which must treat
// it as a denial (fail closed).
//
// A decision placed in the context with DecisionContext short-circuits
// evaluation entirely. Only the authz package is allowed to inject decisions;
// see authz.WithBypassPrivacy.
package policy

import (
	"context"
	"errors"
	"fmt"
)

var (
	// Allow is the verdict granting the operation.
	Allow = errors.New("policy: allow rule")

	// Deny is the verdict refusing the operation outright, overriding any
	// later rule.
	Deny = errors.New("policy: deny rule")

	// Skip is the verdict passing judgement to the next rule.
	Skip = errors.New("policy: skip rule")
)

// Allowf returns a formatted wrapped Allow verdict.
func Allowf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Allow)...)
}

// Denyf returns a formatted wrapped Deny verdict.
func Denyf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Deny)...)
}

// Skipf returns a formatted wrapped Skip verdict.
func Skipf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Skip)...)
}

// Decision is a pre-made evaluation result injected into a context.
type Decision error

// decisionKey is an unexported key type to prevent external forgery.
type decisionKey struct{}

// DecisionContext creates a new context with a policy decision attached,
// bypassing rule evaluation for every operation under it.
func DecisionContext(ctx context.Context, decision Decision) context.Context {
	return context.WithValue(ctx, decisionKey{}, decision)
}

func decisionFromContext(ctx context.Context) (Decision, bool) {
	decision, ok := ctx.Value(decisionKey{}).(Decision)
	return decision, ok
}
