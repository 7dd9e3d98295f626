package httpx

import (
	"context"
	"net/http"

	"bookreview/internal/usecase"
)

type contextKey string

const (
	viewerKey    contextKey = "viewer"
	requestIDKey contextKey = "requestID"
)

// ViewerFrom retrieves the viewer resolved by the auth middleware. Requests
// that never passed through it read as anonymous.
func ViewerFrom(r *http.Request) usecase.Viewer {
	if v, ok := r.Context().Value(viewerKey).(usecase.Viewer); ok {
		return v
	}
	return usecase.Anonymous
}

func ContextWithViewer(ctx context.Context, v usecase.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
