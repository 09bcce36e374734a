package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// AdminIDKey is the gin context key holding the authenticated
	// admin's ID.
	AdminIDKey = "admin_id"
	// AdminEmailKey is the gin context key holding the authenticated
	// admin's email.
	AdminEmailKey = "admin_email"
)

// RequireAdmin rejects requests without a valid, unrevoked session
// token in the Authorization header.
func RequireAdmin(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		session, err := service.CurrentSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(AdminIDKey, session.AdminID)
		c.Set(AdminEmailKey, session.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
