package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// VerifyToken guards routes behind a valid session token. The token is read
// from the "jwt" cookie (tolerating a "Bearer " prefix inside the cookie
// value) or from the Authorization header, and the verified subject is
// injected into the request context as "user_id".
func VerifyToken(tokens *TokenIssuer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			logger.Warn("token missing from request", "op", "auth.VerifyToken", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Token missing"})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			logger.Warn("token rejected", "op", "auth.VerifyToken", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid token"})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("jwt"); err == nil && cookie != "" {
		return strings.TrimPrefix(cookie, "Bearer ")
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
