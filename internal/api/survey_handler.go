package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wedding-message-vault/internal/service"
	"github.com/wedding-message-vault/internal/survey"
)

// SurveyHandler handles the public submission endpoint
type SurveyHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSurveyHandler creates a new SurveyHandler
func NewSurveyHandler(services *service.Services, log zerolog.Logger) *SurveyHandler {
	return &SurveyHandler{
		services: services,
		log:      log.With().Str("handler", "survey").Logger(),
	}
}

// Submit handles POST /api/survey. The payload is bound untyped so that
// malformed optional fields degrade to empty values during
// normalization instead of failing the bind.
func (h *SurveyHandler) Submit(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	entry, err := h.services.Survey.Submit(c.Request.Context(), raw)
	if err != nil {
		if survey.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Failed to save submission")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your message has been saved. Thank you!",
		"id":      entry.ID,
	})
}
