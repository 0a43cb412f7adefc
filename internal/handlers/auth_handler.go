package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	member, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if apperrors.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		// Invalid credentials surface as 401 regardless of which check failed.
		if apperrors.IsValidation(err) || apperrors.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
