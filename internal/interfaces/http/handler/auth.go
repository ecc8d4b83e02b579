package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopledger/backend/internal/infrastructure/auth"
)

// AuthHandler handles the single-operator login
type AuthHandler struct {
	BaseHandler
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest carries the shared admin password
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the shared password for a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		h.Unauthorized(c, "Invalid password")
		return
	}

	h.Success(c, token)
}
