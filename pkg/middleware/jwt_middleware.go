package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tuitionledger/pkg/utils"
)

// JWTAuthMiddleware verifies the bearer token and exposes the identity
// subject as "user_id" on the context. Credential validation itself belongs
// to the identity provider; here we only check the signature.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Next()
	}
}
