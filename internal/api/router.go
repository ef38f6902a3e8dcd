package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wedding-message-vault/internal/auth"
	"github.com/wedding-message-vault/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	surveyHandler := NewSurveyHandler(services, log)
	vaultHandler := NewVaultHandler(services, log)

	requireVault := requireRole(services.Auth, auth.RoleVault)
	requireAdmin := requireRole(services.Auth, auth.RoleAdmin)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.AdminLogin)
		api.POST("/survey", surveyHandler.Submit)

		// Admin raw export
		api.GET("/download", requireAdmin, vaultHandler.DownloadText)

		vaultGroup := api.Group("/vault")
		{
			vaultGroup.POST("/login", authHandler.VaultLogin)

			vaultGroup.GET("", requireVault, vaultHandler.List)
			vaultGroup.GET("/summary", requireVault, vaultHandler.Summary)
			vaultGroup.GET("/decks", requireVault, vaultHandler.Decks)
			vaultGroup.GET("/download", requireVault, vaultHandler.Download)
			vaultGroup.GET("/download.txt", requireVault, vaultHandler.DownloadText)

			vaultGroup.DELETE("", requireVault, vaultHandler.DeleteAll)
			vaultGroup.DELETE("/:id", requireVault, vaultHandler.DeleteOne)
			// Aliases some deployed clients still call; same handlers,
			// no re-dispatch through the routing layer
			vaultGroup.DELETE("/clear", requireVault, vaultHandler.DeleteAll)
			vaultGroup.DELETE("/item/:id", requireVault, vaultHandler.DeleteOne)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "wedding-message-vault",
	})
}

// metricsHandler returns entry store metrics
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, _ := services.Vault.Count(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"entries":   count,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// requireRole verifies the bearer token and its role claim
func requireRole(authMgr *auth.Manager, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token"})
			return
		}

		claims, err := authMgr.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid/Expired token"})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
