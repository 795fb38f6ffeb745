package middleware

import (
	"net/http"

	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests whose session carries no user. Page
// requests are redirected to the login form; writes get a plain 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess.UserID == 0 {
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusFound, "/auth/login")
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the admin panel behind the admin flag, not just a
// valid login.
func RequireAdmin(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess.UserID == 0 {
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusFound, "/auth/login")
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := authService.GetUser(c.Request.Context(), sess.UserID)
		if err != nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
