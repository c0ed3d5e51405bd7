// Package authz implements the policy governance mechanism, providing
// controlled policy bypass and a single-principal authorization model.
//
// Core concepts:
//
//   - Principal: A single authorization identity per call (System/User/Test).
//     Set via NewSystemContext, NewUserContext, or WithPrincipal.
//
//   - Bypass: Controlled policy bypass via RunWithBypass (closure, preferred)
//     or WithBypassPrivacy (explicit context). All bypass operations are
//     audited.
//
// Usage rules:
//
//  1. Never use policy.DecisionContext directly outside this package.
//  2. Prefer RunWithBypass / RunWithSystemBypass closures to limit scope.
//  3. When using WithBypassPrivacy, assign to bypassCtx, never ctx.
//  4. All bypass reasons must be stable strings for audit aggregation.
//  5. Background tasks must declare the System principal via NewSystemContext.
package authz
