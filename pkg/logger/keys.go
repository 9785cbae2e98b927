package logger

import "context"

type operationIDKey struct{}

// WithOperationID adds an operation ID to the context.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey{}, id)
}

// GetOperationID retrieves the operation ID from the context.
// Returns the operation ID and a boolean indicating whether it was found.
func GetOperationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operationIDKey{}).(string)
	return id, ok
}
