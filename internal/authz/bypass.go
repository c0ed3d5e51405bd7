package authz

import (
	"context"
	"fmt"
	"time"

	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/policy"
)

// bypassKey is an unexported key type to prevent external forgery.
type bypassKey struct{}

// bypassInfo stores bypass metadata.
type bypassInfo struct {
	Reason    string
	Timestamp time.Time
	Principal Principal
}

// WithBypassPrivacy creates a local bypass context. Only System or Test
// principals are allowed to call. reason must be a stable audit identifier
// (e.g. "admin-status-lookup", "admin-key-redemption").
func WithBypassPrivacy(ctx context.Context, reason string) (context.Context, error) {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return nil, fmt.Errorf("authz: WithBypassPrivacy requires a principal in context")
	}

	if !p.IsSystem() && !p.IsTest() {
		return nil, fmt.Errorf("authz: WithBypassPrivacy requires system or test principal, got %s", p.String())
	}

	info := bypassInfo{
		Reason:    reason,
		Timestamp: time.Now(),
		Principal: p,
	}

	recordBypassAudit(ctx, info)

	ctx = context.WithValue(ctx, bypassKey{}, info)
	// Only here convert the capability to an engine-recognizable allow context.
	return policy.DecisionContext(ctx, policy.Allow), nil
}

// RunWithBypass executes a bypass operation within a closure, limiting the
// bypass scope. Prefer this over WithBypassPrivacy to keep the bypass context
// from spreading along the call chain.
//
// Example usage:
//
//	isAdmin, err := authz.RunWithBypass(ctx, "admin-status-lookup", func(ctx context.Context) (bool, error) {
//	    return profiles.IsAdmin(ctx, userID)
//	})
func RunWithBypass[T any](ctx context.Context, reason string, fn func(ctx context.Context) (T, error)) (T, error) {
	bypassCtx, err := WithBypassPrivacy(ctx, reason)
	if err != nil {
		var zero T
		return zero, err
	}

	return fn(bypassCtx)
}

// GetBypassInfo retrieves current bypass information. Used for audit and
// debugging.
func GetBypassInfo(ctx context.Context) (bypassInfo, bool) {
	info, ok := ctx.Value(bypassKey{}).(bypassInfo)
	return info, ok
}

// IsBypassActive checks if the current context is in bypass state.
func IsBypassActive(ctx context.Context) bool {
	_, ok := ctx.Value(bypassKey{}).(bypassInfo)
	return ok
}

// RequireElevated checks that the current context runs under an active,
// audited bypass. Storage operations reachable only through trusted workflows
// (admin key mutation) call this before touching rows.
func RequireElevated(ctx context.Context) error {
	if !IsBypassActive(ctx) {
		return fmt.Errorf("authz: operation requires an elevated execution context")
	}

	return nil
}

// bypassAuditRecord represents a bypass audit record.
type bypassAuditRecord struct {
	Timestamp   time.Time
	Principal   string
	Reason      string
	Operation   string
	Description string
}

// auditLogger is the bypass audit logger. Can be customized via
// SetAuditLogger.
var auditLogger func(ctx context.Context, record bypassAuditRecord)

// SetAuditLogger sets a custom audit logger. If not set, the default
// structured log output is used.
func SetAuditLogger(fn func(ctx context.Context, record bypassAuditRecord)) {
	auditLogger = fn
}

// recordBypassAudit records the bypass audit log.
func recordBypassAudit(ctx context.Context, info bypassInfo) {
	record := bypassAuditRecord{
		Timestamp:   info.Timestamp,
		Principal:   info.Principal.String(),
		Reason:      info.Reason,
		Operation:   "bypass",
		Description: fmt.Sprintf("Policy bypass triggered: reason=%s, principal=%s", info.Reason, info.Principal.String()),
	}

	if auditLogger != nil {
		auditLogger(ctx, record)
		return
	}

	log.Debug(ctx, "authz: policy bypass",
		log.String("principal", record.Principal),
		log.String("reason", record.Reason),
		log.String("operation", record.Operation),
	)
}
