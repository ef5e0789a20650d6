package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/taskbackend/services"
)

// CtxUserID holds the authenticated user's id (hex ObjectID) for downstream handlers.
const CtxUserID = "userID"

type TokenVerifier interface {
	VerifyAccessToken(token string) (*services.Claims, error)
}

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if !strings.HasPrefix(header, "Bearer ") || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access token is required"})
			return
		}

		claims, err := verifier.VerifyAccessToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access token could not be verified"})
			return
		}

		c.Set(CtxUserID, claims.ID)
		c.Next()
	}
}
