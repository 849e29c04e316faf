package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorIDKey   = contextKey("actorID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. Falls back to the default logger so services can always log.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetActorIDFromContext retrieves the authenticated staff user ID recorded by
// the auth middleware. The boolean reports whether it was present.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	if actorVal := c.Request.Context().Value(actorIDKey); actorVal != nil {
		if actorID, ok := actorVal.(string); ok {
			return actorID, true
		}
	}
	return "", false
}
