package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/apperrors"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/auth"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apperrors.Respond(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			apperrors.Respond(c, apperrors.Unauthorized("invalid authorization format, use 'Bearer <token>'"))
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			apperrors.Respond(c, apperrors.Unauthorized("invalid token"))
			return
		}

		// Attach user info to request context
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}
