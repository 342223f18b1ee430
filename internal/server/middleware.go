package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/services/market/helpers"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token to the acting user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Actor, error)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if actor, ok := helpers.ActorFrom(c); ok {
		fields["user_id"] = actor.UserID
	}
	utils.Info("HTTP Request", fields)
}

// RequireAuth rejects requests without a live session token
func RequireAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.BearerToken(c)
		if token == "" {
			abortUnauthenticated(c, fmt.Errorf("%w - missing bearer token", marketerrors.ErrUnauthenticated))
			return
		}

		actor, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthenticated(c, err)
			return
		}

		helpers.SetActor(c, actor)
		c.Next()
	}
}

// OptionalAuth attaches the actor when a valid token is present and never rejects
func OptionalAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := helpers.BearerToken(c); token != "" {
			actor, err := authn.Authenticate(c.Request.Context(), token)
			if err == nil {
				helpers.SetActor(c, actor)
			} else {
				utils.Warn("OptionalAuth: ignoring invalid token", map[string]any{"path": c.Request.URL.Path, "error": err.Error()})
			}
		}
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, err error) {
	helpers.RespondError(c, "RequireAuth", "request rejected", err, map[string]any{"path": c.Request.URL.Path})
	c.Abort()
}
