package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/pkg/jwt"
)

// JWTAuth verifies the bearer token and stores the caller identity in the
// request context
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set("userEmail", claims.Email)
		c.Set("userFullName", claims.FullName)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}

// RequireRoles aborts with 403 unless the caller has one of the given roles
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		common.ErrorResponse(c, 403, "Insufficient permissions", nil)
		c.Abort()
	}
}

// RequireAdmin aborts with 403 unless the caller is an admin
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(domain.RoleAdmin)
}

// GetUserEmail extracts the caller's email from context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("userEmail")
	if !exists {
		return ""
	}
	if str, ok := email.(string); ok {
		return str
	}
	return ""
}

// GetUserRole extracts the caller's role from context
func GetUserRole(c *gin.Context) domain.UserRole {
	role, exists := c.Get("userRole")
	if !exists {
		return ""
	}
	if str, ok := role.(string); ok {
		return domain.UserRole(str)
	}
	return ""
}
