package middlewares

import (
	"net/http"

	"backend/pkg/rbac"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// RequirePermission runs the permission table for one resource kind
// against the request verb. Cart routes only ever address the caller's
// own cart, so ownership holds by construction there.
func RequirePermission(res rbac.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := utils.CurrentActor(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required"})
			c.Abort()
			return
		}

		ownsObject := res == rbac.Cart

		if !rbac.Authorize(actor.Roles, c.Request.Method, res, ownsObject).Allowed() {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}
