package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/netzone/internal/access"
	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/log"
	"github.com/ErlanBelekov/netzone/internal/metrics"
	"github.com/ErlanBelekov/netzone/internal/session"
)

const (
	userKey  = "session_user"
	tokenKey = "session_token"

	errUnauthorized = "Unauthorized"
	errForbidden    = "Forbidden"
)

// Session reads an optional Bearer token. A valid token puts the user in
// the gin context; a missing or bad one leaves the request anonymous and
// lets Guard decide.
func Session(codec *session.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		u, err := codec.Parse(raw)
		if err != nil {
			c.Next()
			return
		}

		c.Set(userKey, u)
		c.Set(tokenKey, raw)
		c.Request = c.Request.WithContext(log.WithUserID(c.Request.Context(), u.ID))
		c.Next()
	}
}

// Guard enforces access.CanAccess on the request path: 401 for an
// anonymous caller, 403 for a signed-in one without the right role.
func Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if access.CanAccess(c.Request.URL.Path, u) {
			c.Next()
			return
		}
		if u == nil {
			metrics.GuardRejectionsTotal.WithLabelValues("anonymous").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		metrics.GuardRejectionsTotal.WithLabelValues("role").Inc()
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
	}
}

// CurrentUser returns the session user set by Session, nil when anonymous.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// BearerToken returns the accepted session token, "" when anonymous.
func BearerToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
