package authz

import (
	"context"
	"fmt"

	"github.com/looplj/chirphub/internal/contexts"
)

// PrincipalType defines authorization principal types.
type PrincipalType int

const (
	// PrincipalTypeUnknown unknown principal type.
	PrincipalTypeUnknown PrincipalType = iota
	// PrincipalTypeSystem system principal (trusted workflows, internal operations).
	PrincipalTypeSystem
	// PrincipalTypeUser user principal.
	PrincipalTypeUser
	// PrincipalTypeTest test principal (only for test environment).
	PrincipalTypeTest
)

// String returns string representation of PrincipalType.
func (p PrincipalType) String() string {
	switch p {
	case PrincipalTypeSystem:
		return "system"
	case PrincipalTypeUser:
		return "user"
	case PrincipalTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// Principal represents the authorization identity of a call. Each call has at
// most one Principal, guaranteed by WithPrincipal's set-once semantics. A call
// without a principal and without an ambient actor id is anonymous.
type Principal struct {
	Type PrincipalType

	// UserID is the opaque user identifier, user principals only.
	UserID string
}

// IsSystem checks if it is a system principal.
func (p Principal) IsSystem() bool {
	return p.Type == PrincipalTypeSystem
}

// IsUser checks if it is a user principal.
func (p Principal) IsUser() bool {
	return p.Type == PrincipalTypeUser
}

// IsTest checks if it is a test principal.
func (p Principal) IsTest() bool {
	return p.Type == PrincipalTypeTest
}

// String returns string representation of Principal (for audit logs).
func (p Principal) String() string {
	switch p.Type {
	case PrincipalTypeSystem:
		return "system"
	case PrincipalTypeUser:
		if p.UserID != "" {
			return fmt.Sprintf("user:%s", p.UserID)
		}

		return "user:unknown"
	case PrincipalTypeTest:
		return "test"
	default:
		return "unknown"
	}
}

// principalKey is an unexported key type to prevent external forgery.
type principalKey struct{}

// WithPrincipal sets the Principal, returning an error on conflict. Each
// context can carry only one principal, preventing principal mixing.
func WithPrincipal(ctx context.Context, p Principal) (context.Context, error) {
	if existing, ok := GetPrincipal(ctx); ok {
		if existing != p {
			return ctx, fmt.Errorf("authz: principal conflict: existing=%s, new=%s", existing.String(), p.String())
		}

		return ctx, nil // Same principal, idempotent.
	}

	return context.WithValue(ctx, principalKey{}, p), nil
}

// GetPrincipal reads the Principal.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// MustGetPrincipal reads the Principal, panicking if absent. Use only in
// chains where the principal is confirmed.
func MustGetPrincipal(ctx context.Context) Principal {
	p, ok := GetPrincipal(ctx)
	if !ok {
		panic("authz: no principal in context")
	}

	return p
}

// NewUserContext creates a context with a User principal.
func NewUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{
		Type:   PrincipalTypeUser,
		UserID: userID,
	})
}

// ActingUserID resolves the acting user for the current call. Resolution
// precedence: an authenticated user principal first, the ambient actor id
// second; otherwise the call is anonymous and ok is false. The lookup is pure
// and re-derivable per call.
func ActingUserID(ctx context.Context) (string, bool) {
	if p, ok := GetPrincipal(ctx); ok && p.IsUser() && p.UserID != "" {
		return p.UserID, true
	}

	if actor, ok := contexts.GetActorID(ctx); ok {
		return actor, true
	}

	return "", false
}

// RequirePrincipal checks that a principal exists, otherwise returns an error.
func RequirePrincipal(ctx context.Context) error {
	if _, ok := GetPrincipal(ctx); !ok {
		return fmt.Errorf("authz: no principal in context")
	}

	return nil
}
