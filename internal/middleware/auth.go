package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionUserID = "user_id"
)

// SessionUser copies the acting dashboard user from the shared session into
// the request context as "user_id". Anonymous requests pass through.
func SessionUser(sessionKey string) gin.HandlerFunc {
	if sessionKey == "" {
		sessionKey = SessionUserID
	}
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID, ok := session.Get(sessionKey).(string); ok && userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
