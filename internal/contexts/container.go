package contexts

import (
	"context"
	"sync"
)

// ContextKey defines the context key type.
type ContextKey string

// containerContextKey is used to store the context container in the context.
const containerContextKey ContextKey = "context_container"

// contextContainer contains all per-call values. One container exists per
// request/transaction scope; it is never shared across unrelated calls.
type contextContainer struct {
	ActorID       *string
	TraceID       *string
	RequestID     *string
	OperationName *string

	mu   sync.Mutex
	errs []error
}

// getContainer retrieves the existing container from the context, or creates a
// new one if it doesn't exist.
func getContainer(ctx context.Context) *contextContainer {
	if container, ok := ctx.Value(containerContextKey).(*contextContainer); ok {
		return container
	}

	return &contextContainer{}
}

// withContainer stores the container in the context (if not already stored).
func withContainer(ctx context.Context, container *contextContainer) context.Context {
	if ctx.Value(containerContextKey) == nil {
		return context.WithValue(ctx, containerContextKey, container)
	}

	return ctx
}
