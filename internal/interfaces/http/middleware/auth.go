package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopledger/backend/internal/infrastructure/auth"
	"github.com/shopledger/backend/internal/interfaces/http/dto"
)

// RequireAuth validates the Bearer token on protected routes.
// Requests without a valid session token are rejected with 401.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			abortUnauthorized(c, "Authorization header must use the Bearer scheme")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		claims, err := authService.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				abortUnauthorized(c, "Session has expired, please log in again")
			default:
				abortUnauthorized(c, "Invalid session token")
			}
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
