package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// loopbackOnly rejects requests that do not come from this machine or that
// carry a non-local Host header (DNS rebinding).
func loopbackOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isLoopbackRequest(c.Request) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{JSONKeyError: HTTPErrorForbiddenText})
			return
		}
		if !isSafeLocalHost(c.Request.Host) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{JSONKeyError: HTTPErrorForbiddenHostText})
			return
		}
		c.Next()
	}
}

// corsFor allows browser pages served from origins to call the API.
// It returns nil when no origin is configured.
func corsFor(origins []string) gin.HandlerFunc {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if n := NormalizeOrigin(o); n != "" {
			allowed = append(allowed, n)
		}
	}
	if len(allowed) == 0 {
		return nil
	}

	return cors.New(cors.Config{
		AllowOrigins: allowed,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       corsMaxAge,
	})
}
