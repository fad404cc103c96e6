package utils

import (
	"backend/pkg/rbac"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

func SetActor(c *gin.Context, a *rbac.Actor) {
	c.Set(actorKey, a)
}

// CurrentActor returns the resolved identity, or nil when the request
// never passed the auth middleware.
func CurrentActor(c *gin.Context) *rbac.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	a, ok := v.(*rbac.Actor)
	if !ok {
		return nil
	}
	return a
}
