package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/looplj/chirphub/internal/log"
)

// ErrDenied is returned when no rule grants the operation.
var ErrDenied = errors.New("policy: denied")

// Engine evaluates a registry against a context and a candidate row.
// Evaluation is read-only and side-effect free; any number of evaluations may
// run concurrently.
type Engine struct {
	registry *Registry
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Registry exposes the engine's rule table for diagnostics.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Authorize evaluates all rules registered for (resource, action) against the
// row. It returns nil when a rule allows, ErrDenied when every rule skips or
// a rule denies, and the underlying error when a rule fails to evaluate.
// Callers must treat evaluation errors as denials.
func (e *Engine) Authorize(ctx context.Context, resource Resource, action Action, row Row) error {
	if decision, ok := decisionFromContext(ctx); ok {
		if errors.Is(decision, Allow) {
			return nil
		}

		return ErrDenied
	}

	rules := e.registry.Rules(resource, action)

	for _, rule := range rules {
		err := rule.EvalRow(ctx, row)

		switch {
		case errors.Is(err, Allow):
			e.logDecision(ctx, resource, action, rule.Name(), true)
			return nil
		case errors.Is(err, Skip):
			continue
		case errors.Is(err, Deny):
			e.logDecision(ctx, resource, action, rule.Name(), false)
			return ErrDenied
		case err != nil:
			return fmt.Errorf("policy: rule %q evaluation failed: %w", rule.Name(), err)
		default:
			// A rule must decide; a nil return is a programming error and
			// fails closed.
			return fmt.Errorf("policy: rule %q returned no verdict", rule.Name())
		}
	}

	e.logDecision(ctx, resource, action, "", false)

	return ErrDenied
}

// Allowed is a convenience wrapper collapsing evaluation faults into a
// denial. Services that must report faults use Authorize directly.
func (e *Engine) Allowed(ctx context.Context, resource Resource, action Action, row Row) bool {
	return e.Authorize(ctx, resource, action, row) == nil
}

func (e *Engine) logDecision(ctx context.Context, resource Resource, action Action, ruleName string, allowed bool) {
	if !log.DebugEnabled(ctx) {
		return
	}

	log.Debug(ctx, "policy: decision",
		log.String("resource", string(resource)),
		log.String("action", string(action)),
		log.String("rule", ruleName),
		log.String("decision", lo.Ternary(allowed, "allow", "deny")),
	)
}
