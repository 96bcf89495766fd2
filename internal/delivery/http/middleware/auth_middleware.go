package middleware

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates the request from a Bearer header or the
// auth_token cookie. The role always comes from a fresh database read,
// never from the token, so a stale token cannot keep elevated access.
func AuthMiddleware(tokens *auth.TokenIssuer, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)

		c.Next()
	}
}

// RequireRole rejects authenticated users whose role does not match.
// Must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(string(domain.KeyUserRole))
		if userRole != role {
			requestID, _ := c.Get("RequestID")
			reqIDStr, _ := requestID.(string)
			security.DefaultLogger().LogUnauthorizedAccess(
				c.Request.Context(),
				c.GetString(string(domain.KeyUserID)),
				c.ClientIP(),
				reqIDStr,
				c.FullPath(),
			)
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts a route group to ADMIN accounts
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
