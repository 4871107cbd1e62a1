package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth protects an endpoint with a static Bearer token. With an empty
// token the endpoint stays open when allowEmpty is set and is closed
// otherwise.
func BearerAuth(realm, token string, allowEmpty bool) gin.HandlerFunc {
	challenge := `Bearer realm="` + realm + `"`

	return func(c *gin.Context) {
		if token == "" {
			if allowEmpty {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Endpoint disabled",
			})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Bearer token required",
			})
			return
		}

		// Constant-time comparison to prevent timing attacks
		provided := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid token",
			})
			return
		}

		c.Next()
	}
}

// MetricsAuthMiddleware protects /metrics; no token means open access
func MetricsAuthMiddleware(token string) gin.HandlerFunc {
	return BearerAuth("Metrics", token, true)
}

// AdminAuthMiddleware protects the operator API; no token disables it
func AdminAuthMiddleware(token string) gin.HandlerFunc {
	return BearerAuth("Operator", token, false)
}
