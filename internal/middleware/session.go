package middleware

import (
	"net/http"

	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxSessionID = "sessionID"
	ctxSession   = "session"
)

// Session resolves the session cookie, creating a fresh session (and
// cookie) when there is none or it no longer validates. The payload is
// written back after the handler ran so cart and flash mutations stick.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			id   string
			data *session.Data
		)

		if cookie, err := c.Cookie(session.CookieName); err == nil {
			if resolvedID, resolved, err := manager.Resolve(c.Request.Context(), cookie); err == nil {
				id, data = resolvedID, resolved
			}
		}

		if data == nil {
			newID, cookieValue, fresh, err := manager.Issue(c.Request.Context())
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
			id, data = newID, fresh
			c.SetCookie(session.CookieName, cookieValue, int(manager.TTL().Seconds()), "/", "", false, true)
		}

		c.Set(ctxSessionID, id)
		c.Set(ctxSession, data)

		c.Next()

		// Best effort: a failed save only loses this request's mutations
		_ = manager.Save(c.Request.Context(), id, data)
	}
}

// GetSession returns the request's session payload. The session
// middleware guarantees it exists downstream.
func GetSession(c *gin.Context) *session.Data {
	return c.MustGet(ctxSession).(*session.Data)
}

// GetSessionID returns the request's session ID.
func GetSessionID(c *gin.Context) string {
	return c.MustGet(ctxSessionID).(string)
}
