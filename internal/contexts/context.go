package contexts

import "context"

// WithActorID stores the ambient acting user for the current call scope.
// The value lives in the call's own container, so setting it never leaks to
// unrelated concurrent calls in the same process.
func WithActorID(ctx context.Context, actorID string) context.Context {
	container := getContainer(ctx)
	container.ActorID = &actorID

	return withContainer(ctx, container)
}

// GetActorID retrieves the ambient acting user for the current call scope.
func GetActorID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.ActorID != nil && *container.ActorID != "" {
		return *container.ActorID, true
	}

	return "", false
}

// WithTraceID stores the trace id in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	container := getContainer(ctx)
	container.TraceID = &traceID

	return withContainer(ctx, container)
}

// GetTraceID retrieves the trace id from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.TraceID != nil {
		return *container.TraceID, true
	}

	return "", false
}

// WithRequestID stores the request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	container := getContainer(ctx)
	container.RequestID = &requestID

	return withContainer(ctx, container)
}

// GetRequestID retrieves the request id from the context.
func GetRequestID(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.RequestID != nil {
		return *container.RequestID, true
	}

	return "", false
}

// WithOperationName stores the operation name in the context.
func WithOperationName(ctx context.Context, name string) context.Context {
	container := getContainer(ctx)
	container.OperationName = &name

	return withContainer(ctx, container)
}

// GetOperationName retrieves the operation name from the context.
func GetOperationName(ctx context.Context) (string, bool) {
	container := getContainer(ctx)
	if container.OperationName != nil {
		return *container.OperationName, true
	}

	return "", false
}

// AppendError records an error on the current call scope for access logging.
func AppendError(ctx context.Context, err error) context.Context {
	if err == nil {
		return ctx
	}

	container := getContainer(ctx)

	container.mu.Lock()
	container.errs = append(container.errs, err)
	container.mu.Unlock()

	return withContainer(ctx, container)
}

// GetErrors returns the errors recorded on the current call scope.
func GetErrors(ctx context.Context) []error {
	container := getContainer(ctx)

	container.mu.Lock()
	defer container.mu.Unlock()

	errs := make([]error, len(container.errs))
	copy(errs, container.errs)

	return errs
}
