package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowRule(name string) Rule {
	return NewRule(name, func(ctx context.Context, row Row) error {
		return Allow
	})
}

func skipRule(name string) Rule {
	return NewRule(name, func(ctx context.Context, row Row) error {
		return Skipf("%s does not apply", name)
	})
}

func TestEngineDefaultDeny(t *testing.T) {
	engine := NewEngine(NewRegistry(1))

	err := engine.Authorize(context.Background(), ResourcePost, ActionRead, Row{})
	assert.ErrorIs(t, err, ErrDenied)
}

func TestEngineAllSkipDenies(t *testing.T) {
	registry := NewRegistry(1)
	registry.Register(ResourcePost, ActionRead, skipRule("a"), skipRule("b"))

	engine := NewEngine(registry)

	err := engine.Authorize(context.Background(), ResourcePost, ActionRead, Row{})
	assert.ErrorIs(t, err, ErrDenied)
}

func TestEngineOrCombination(t *testing.T) {
	registry := NewRegistry(1)
	registry.Register(ResourcePost, ActionRead, skipRule("a"), allowRule("b"), skipRule("c"))

	engine := NewEngine(registry)

	err := engine.Authorize(context.Background(), ResourcePost, ActionRead, Row{})
	assert.NoError(t, err)
}

func TestEngineDenyShortCircuits(t *testing.T) {
	registry := NewRegistry(1)
	registry.Register(ResourcePost, ActionRead,
		NewRule("deny", func(ctx context.Context, row Row) error {
			return Denyf("blocked")
		}),
		allowRule("never-reached"),
	)

	engine := NewEngine(registry)

	err := engine.Authorize(context.Background(), ResourcePost, ActionRead, Row{})
	assert.ErrorIs(t, err, ErrDenied)
}

func TestEngineEvaluationFaultPropagates(t *testing.T) {
	fault := errors.New("lookup failed")

	registry := NewRegistry(1)
	registry.Register(ResourcePost, ActionRead,
		NewRule("faulty", func(ctx context.Context, row Row) error {
			return fault
		}),
		allowRule("never-reached"),
	)

	engine := NewEngine(registry)

	err := engine.Authorize(context.Background(), ResourcePost, ActionRead, Row{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fault)
	assert.NotErrorIs(t, err, ErrDenied)

	// Allowed collapses the fault into a denial.
	assert.False(t, engine.Allowed(context.Background(), ResourcePost, ActionRead, Row{}))
}

func TestEngineNilVerdictFailsClosed(t *testing.T) {
	registry := NewRegistry(1)
	registry.Register(ResourcePost, ActionRead,
		NewRule("undecided", func(ctx context.Context, row Row) error {
			return nil
		}),
	)

	engine := NewEngine(registry)

	err := engine.Authorize(context.Background(), ResourcePost, ActionRead, Row{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDenied)
}

func TestEngineRulesScopedToResourceAndAction(t *testing.T) {
	registry := NewRegistry(1)
	registry.Register(ResourcePost, ActionRead, allowRule("read-only"))

	engine := NewEngine(registry)

	assert.NoError(t, engine.Authorize(context.Background(), ResourcePost, ActionRead, Row{}))
	assert.ErrorIs(t, engine.Authorize(context.Background(), ResourcePost, ActionUpdate, Row{}), ErrDenied)
	assert.ErrorIs(t, engine.Authorize(context.Background(), ResourceComment, ActionRead, Row{}), ErrDenied)
}

func TestDecisionContext(t *testing.T) {
	engine := NewEngine(NewRegistry(1))

	t.Run("allow bypasses evaluation", func(t *testing.T) {
		ctx := DecisionContext(context.Background(), Allow)
		assert.NoError(t, engine.Authorize(ctx, ResourceAdminKey, ActionUpdate, Row{}))
	})

	t.Run("deny bypasses evaluation", func(t *testing.T) {
		registry := NewRegistry(1)
		registry.Register(ResourcePost, ActionRead, allowRule("open"))

		ctx := DecisionContext(context.Background(), Deny)
		err := NewEngine(registry).Authorize(ctx, ResourcePost, ActionRead, Row{})
		assert.ErrorIs(t, err, ErrDenied)
	})
}

func TestRegistryDiagnostics(t *testing.T) {
	registry := NewRegistry(3)
	registry.Register(ResourcePost, ActionRead, allowRule("approved-visible"), allowRule("owner-visible"))

	assert.Equal(t, 3, registry.Version())
	assert.Equal(t, []string{"approved-visible", "owner-visible"}, registry.RuleNames(ResourcePost, ActionRead))
	assert.Empty(t, registry.RuleNames(ResourcePost, ActionDelete))
}

func TestVerdictWrapping(t *testing.T) {
	assert.ErrorIs(t, Allowf("granted to %s", "u1"), Allow)
	assert.ErrorIs(t, Denyf("blocked"), Deny)
	assert.ErrorIs(t, Skipf("not applicable"), Skip)
}
