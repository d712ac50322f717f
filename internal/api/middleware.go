package api

import (
	"net/http"
	"strings"

	"repurpose/internal/auth"
	"repurpose/internal/utils"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware requires "Authorization: Bearer <token>" and stores the
// verified claims on the context
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.Abort(c, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), s.jwtSecret)
		if err != nil {
			utils.Abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func currentUserID(c *gin.Context) string {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
