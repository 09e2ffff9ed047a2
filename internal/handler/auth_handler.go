package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/domain"
	"github.com/flowhq/approval-backend/internal/middleware"
	"github.com/flowhq/approval-backend/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.Register(&req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	common.CreatedResponse(c, user, nil)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, tokens, err := h.service.Login(&req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	common.SuccessResponse(c, gin.H{
		"user":   user,
		"tokens": tokens,
	}, nil)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tokens, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err, "Token refresh failed")
		return
	}

	common.SuccessResponse(c, tokens, nil)
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so this
// only clears the refresh cookie for browser clients; API clients discard
// their tokens locally.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("refresh_token", "", -1, "/", "", true, true)

	common.SuccessResponse(c, gin.H{"message": "Logged out successfully"}, nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.GetProfile(middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err, "Profile lookup failed")
		return
	}

	common.SuccessResponse(c, user, nil)
}
