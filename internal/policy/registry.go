package policy

import "context"

// Rule is a named predicate over (context, candidate row). EvalRow returns
// Allow, Deny, Skip, or an evaluation fault.
type Rule interface {
	Name() string
	EvalRow(ctx context.Context, row Row) error
}

// NewRule builds a Rule from a name and an evaluation function.
func NewRule(name string, fn func(ctx context.Context, row Row) error) Rule {
	return rule{name: name, fn: fn}
}

type rule struct {
	name string
	fn   func(ctx context.Context, row Row) error
}

func (r rule) Name() string {
	return r.name
}

func (r rule) EvalRow(ctx context.Context, row Row) error {
	return r.fn(ctx, row)
}

type registryKey struct {
	resource Resource
	action   Action
}

// Registry is a versioned, declarative table of rules keyed by
// (resource, action). Rules keep registration order for diagnostics; order
// does not affect the engine's OR-combination.
type Registry struct {
	version int
	rules   map[registryKey][]Rule
}

func NewRegistry(version int) *Registry {
	return &Registry{
		version: version,
		rules:   make(map[registryKey][]Rule),
	}
}

// Version returns the registry's declared version.
func (r *Registry) Version() int {
	return r.version
}

// Register appends rules for (resource, action). Registration is not safe for
// concurrent use; build the full registry before handing it to an engine.
func (r *Registry) Register(resource Resource, action Action, rules ...Rule) {
	key := registryKey{resource: resource, action: action}
	r.rules[key] = append(r.rules[key], rules...)
}

// Rules returns the registered rules for (resource, action) in registration
// order.
func (r *Registry) Rules(resource Resource, action Action) []Rule {
	return r.rules[registryKey{resource: resource, action: action}]
}

// RuleNames returns the rule names for (resource, action), for audit output.
func (r *Registry) RuleNames(resource Resource, action Action) []string {
	rules := r.Rules(resource, action)

	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Name()
	}

	return names
}
