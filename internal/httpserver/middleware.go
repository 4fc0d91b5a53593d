package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"umrah-storefront/internal/domain"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCtxKey = "session"
)

// sessionMiddleware loads the session named by the X-Session-ID header.
// When required is false a missing or unknown session is tolerated.
func sessionMiddleware(svc sessionService, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + sessionHeader + " header"})
				return
			}
			c.Next()
			return
		}

		sess, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				if required {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
					return
				}
				c.Next()
				return
			}
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(sessionCtxKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *domain.Session {
	if v, ok := c.Get(sessionCtxKey); ok {
		if s, ok := v.(*domain.Session); ok {
			return s
		}
	}
	return nil
}

// sessionID is only valid behind a required sessionMiddleware.
func sessionID(c *gin.Context) string {
	if s := sessionFrom(c); s != nil {
		return s.ID
	}
	return ""
}
