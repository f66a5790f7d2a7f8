package middleware

import "context"

type ctxKey string

const (
	ctxKeyHTMX    ctxKey = "htmx"
	ctxKeySession ctxKey = "session"
)

// HXRequest is what the docs shell reads from htmx request headers.
type HXRequest struct {
	// Boosted is set for hx-boost page loads, which still get a full page.
	Boosted bool
	// CurrentPath is the path of the page the request was sent from.
	CurrentPath string
}

// WithHTMX stores the htmx request details. A nil hx marks a plain request.
func WithHTMX(ctx context.Context, hx *HXRequest) context.Context {
	return context.WithValue(ctx, ctxKeyHTMX, hx)
}

// HTMXFromContext returns the htmx details, or false for plain requests.
func HTMXFromContext(ctx context.Context) (HXRequest, bool) {
	hx, ok := ctx.Value(ctxKeyHTMX).(*HXRequest)
	if !ok || hx == nil {
		return HXRequest{}, false
	}
	return *hx, true
}

// IsHTMX reports whether the request came from htmx.
func IsHTMX(ctx context.Context) bool {
	_, ok := HTMXFromContext(ctx)
	return ok
}

// WithSession stores session data in context.
func WithSession(ctx context.Context, s *SessionData) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFromContext returns the request's session, or an empty one.
func SessionFromContext(ctx context.Context) *SessionData {
	if s, ok := ctx.Value(ctxKeySession).(*SessionData); ok && s != nil {
		return s
	}
	return &SessionData{}
}
