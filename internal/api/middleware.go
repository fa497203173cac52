package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ownerSessionKey = "owner"

// OwnerContextKey is where the session owner id is stored on the gin context.
const OwnerContextKey = "owner"

// CORSMiddleware adds CORS headers for the configured frontend origin.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	origin := strings.TrimSuffix(frontendURL, "/")
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SessionOwner assigns each browser session an opaque owner id and puts it on
// the request context. History entries are scoped to this id, mirroring
// per-browser history without any account system.
func SessionOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		owner, _ := session.Get(ownerSessionKey).(string)
		if owner == "" {
			owner = uuid.NewString()
			session.Set(ownerSessionKey, owner)
			if err := session.Save(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
				return
			}
		}

		c.Set(OwnerContextKey, owner)
		c.Next()
	}
}
