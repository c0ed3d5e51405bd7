package biz

import (
	"github.com/looplj/chirphub/internal/access"
	"github.com/looplj/chirphub/internal/policy"
	"github.com/looplj/chirphub/internal/storage"
)

// NewPolicyEngine wires the canonical rule set to its row lookups. The
// admin checker is a separate component so the profile service can depend on
// the engine without a cycle.
func NewPolicyEngine(admins *AdminStatusChecker, posts *storage.PostStore) *policy.Engine {
	return access.NewEngine(admins, posts)
}
