package helpers

import (
	"github.com/gkrishna247/lendit-p2p-market/internal/auth"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"

	"github.com/gin-gonic/gin"
)

const actorKey = "lendit.actor"

// SetActor stores the authenticated user for the rest of the request
func SetActor(c *gin.Context, actor model.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom returns the authenticated user, if any
func ActorFrom(c *gin.Context) (model.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return model.Actor{}, false
	}
	actor, ok := v.(model.Actor)
	return actor, ok && actor.UserID != ""
}

// BearerToken returns the request's bearer token or ""
func BearerToken(c *gin.Context) string {
	return auth.BearerToken(c.GetHeader("Authorization"))
}
