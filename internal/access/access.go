// Package access declares the canonical row-level rule set of the platform.
// Rules are named predicates registered per (resource, action); the policy
// engine combines them with OR and denies by default.
package access

import (
	"context"

	"github.com/looplj/chirphub/internal/policy"
)

// RegistryVersion identifies the current canonical rule set. Bump it whenever
// a rule is added, removed or changes meaning.
const RegistryVersion = 1

// AdminChecker resolves whether an identity is an administrator. The lookup
// defaults to false for unknown or anonymous identities; lookup failures
// propagate and fail closed.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// PostChecker resolves the moderation status of a post. Comment visibility
// depends on the parent post being approved.
type PostChecker interface {
	PostStatus(ctx context.Context, postID string) (status string, found bool, err error)
}

// NewRegistry builds the canonical registry:
//
//	Post      read           approved-visible | owner-visible | admin-visible
//	Post      create         owner-create
//	Post      update         owner-update | admin-update
//	Post      delete         admin-delete
//	Profile   read           all-visible
//	Profile   create/update  self-only
//	Comment   read           on-approved-post
//	Comment   create         authenticated
//	Comment   update         owner-update
//	Like      read           all-visible
//	Like      create         authenticated
//	Like      update/delete  owner-only
//	Retweet   read           all-visible
//	Retweet   create         authenticated
//	Retweet   update/delete  owner-only
//	AdminKey  read           unused-only
//
// AdminKey update has no rule on purpose: that mutation is reachable only
// through the redemption workflow's elevated path.
func NewRegistry(admins AdminChecker, posts PostChecker) *policy.Registry {
	registry := policy.NewRegistry(RegistryVersion)

	registerPostRules(registry, admins)
	registerProfileRules(registry)
	registerCommentRules(registry, posts)
	registerReactionRules(registry)
	registerAdminKeyRules(registry)

	return registry
}

// NewEngine builds an engine over the canonical registry.
func NewEngine(admins AdminChecker, posts PostChecker) *policy.Engine {
	return policy.NewEngine(NewRegistry(admins, posts))
}
