package domain

import "context"

type viewerKey struct{}

// WithViewer stores the authenticated viewer's user ID in the context.
// Only the transport layer reads it back; services take the viewer explicitly.
func WithViewer(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, viewerKey{}, userID)
}

// ViewerFromContext extracts the viewer's user ID from the context.
func ViewerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(viewerKey{}).(string)
	return id, ok && id != ""
}
