package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/requestdata"
	"github.com/chasinalts/comet-scanner-wizard/internal/services"
)

// RequireAuth validates the bearer token, loads the caller's identity, and
// stores it on the request context for downstream handlers. SSE clients
// cannot set headers, so a token query parameter is accepted as a fallback.
func RequireAuth(authService services.AuthService, log *logger.Logger) gin.HandlerFunc {
	mwLog := log.With("middleware", "RequireAuth")
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			return
		}

		ctx, err := authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			mwLog.Debug("Token validation failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		rd := requestdata.GetRequestData(ctx)
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireOwner gates admin routes. It assumes RequireAuth already ran.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization"})
			return
		}
		if !rd.IsOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Owner access required"})
			return
		}
		c.Next()
	}
}
