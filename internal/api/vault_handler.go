package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wedding-message-vault/internal/service"
	"github.com/wedding-message-vault/internal/vault"
)

// VaultHandler handles the token-gated vault endpoints
type VaultHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewVaultHandler creates a new VaultHandler
func NewVaultHandler(services *service.Services, log zerolog.Logger) *VaultHandler {
	return &VaultHandler{
		services: services,
		log:      log.With().Str("handler", "vault").Logger(),
	}
}

// List handles GET /api/vault
func (h *VaultHandler) List(c *gin.Context) {
	items, err := h.services.Vault.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list entries")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "vault read failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Summary handles GET /api/vault/summary
func (h *VaultHandler) Summary(c *gin.Context) {
	summary, err := h.services.Vault.Summary(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to summarize entries")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "vault read failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Decks handles GET /api/vault/decks?type=<category>
func (h *VaultHandler) Decks(c *gin.Context) {
	filter := c.Query("type")
	if filter == "" {
		filter = vault.FilterAll
	}

	decks, err := h.services.Vault.Decks(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to project decks")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "vault read failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

// Download handles GET /api/vault/download (xlsx workbook)
func (h *VaultHandler) Download(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="vault.xlsx"`)

	if err := h.services.Vault.WriteWorkbook(c.Request.Context(), c.Writer); err != nil {
		h.log.Error().Err(err).Msg("Workbook export failed")
		// Headers may already be out; nothing more to send
		return
	}
}

// DownloadText handles GET /api/vault/download.txt and GET /api/download
// (NDJSON, one entry per line)
func (h *VaultHandler) DownloadText(c *gin.Context) {
	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Content-Disposition", `attachment; filename="results.txt"`)

	if err := h.services.Vault.WriteNDJSON(c.Request.Context(), c.Writer); err != nil {
		h.log.Error().Err(err).Msg("NDJSON export failed")
		return
	}
}

// DeleteAll handles DELETE /api/vault (and its /clear alias)
func (h *VaultHandler) DeleteAll(c *gin.Context) {
	if err := h.services.Vault.DeleteAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "delete all failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteOne handles DELETE /api/vault/:id (and its /item/:id alias).
// Deleting an absent id reports removed=false rather than erroring.
func (h *VaultHandler) DeleteOne(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing id"})
		return
	}

	removed, err := h.services.Vault.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "removed": removed})
}
