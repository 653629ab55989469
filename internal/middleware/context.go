package middleware

import (
	"context"

	"github.com/creotizant/HCM-Landing/internal/nav"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX  ctxKey = "is_htmx"
	ctxKeySession ctxKey = "session"
	ctxKeyShell   ctxKey = "shell"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithShell stores the session's navigation shell in context.
func WithShell(ctx context.Context, sh *nav.Shell) context.Context {
	return context.WithValue(ctx, ctxKeyShell, sh)
}

// ShellFromContext returns the navigation shell attached by Shells.
func ShellFromContext(ctx context.Context) (*nav.Shell, bool) {
	sh, ok := ctx.Value(ctxKeyShell).(*nav.Shell)
	return sh, ok && sh != nil
}
