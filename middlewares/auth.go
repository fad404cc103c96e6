package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"backend/pkg/rbac"
	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token and resolves the actor's
// role set from group membership once, up front; handlers downstream
// never touch the groups tables again for this request.
func AuthMiddleware(users *repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unknown user"})
			c.Abort()
			return
		}

		roles, err := users.ResolveRoles(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "cannot resolve roles"})
			c.Abort()
			return
		}

		utils.SetActor(c, &rbac.Actor{ID: user.ID, Username: user.Username, Roles: roles})
		c.Next()
	}
}
