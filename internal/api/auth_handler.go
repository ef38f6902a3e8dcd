package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wedding-message-vault/internal/auth"
	"github.com/wedding-message-vault/internal/service"
)

// AuthHandler handles login endpoints
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// AdminLogin handles POST /api/auth/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing credentials"})
		return
	}

	token, err := h.services.Auth.AdminLogin(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrMissingCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing credentials"})
			return
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		h.log.Error().Err(err).Msg("Admin login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// VaultLogin handles POST /api/vault/login
func (h *AuthHandler) VaultLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing password"})
		return
	}

	token, err := h.services.Auth.VaultLogin(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrMissingCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing password"})
			return
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
			return
		}
		h.log.Error().Err(err).Msg("Vault login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
