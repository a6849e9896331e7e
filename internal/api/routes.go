package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"playpal-backend-go/internal/core"
)

// SetupRoutes registers every endpoint. Global middleware (logging,
// recovery, CORS) is expected to be installed on router already.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	notificationService core.NotificationService,
	verificationService core.VerificationService,
) {
	triggerHandler := NewTriggerHandler(notificationService, logger)
	verifyHandler := NewVerifyHandler(verificationService, logger)

	triggers := router.Group("/triggers")
	{
		triggers.POST("/match-status", triggerHandler.MatchStatus)
		triggers.POST("/payment-decision", triggerHandler.PaymentDecision)
	}

	router.GET("/verifyTestUser", verifyHandler.VerifyTestUser)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "PlayPal backend is healthy."})
	})

	logger.Info("API routes configured under /triggers, /verifyTestUser and /health.")
}
