package middleware

import (
	"net/http"
	"strings"

	"inventory_api/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey   = "authUser"
	AuthRoleKey   = "authRole"
	AuthClaimsKey = "authClaims"
)

// JWTAuthMiddleware creates a middleware for JWT authentication. Every
// failure answers 401 with the same generic message; nothing about the
// actual verification failure is leaked.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, userID)
		c.Set(AuthRoleKey, claims.Role)
		c.Set(AuthClaimsKey, claims)

		c.Next()
	}
}
