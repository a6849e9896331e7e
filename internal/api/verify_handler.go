package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"playpal-backend-go/internal/core"
)

// VerifyHandler serves the test-account verification endpoint.
type VerifyHandler struct {
	service core.VerificationService
	logger  *zap.Logger
}

// NewVerifyHandler creates a new VerifyHandler.
func NewVerifyHandler(service core.VerificationService, logger *zap.Logger) *VerifyHandler {
	return &VerifyHandler{service: service, logger: logger}
}

// VerifyTestUser handles GET /verifyTestUser?uid=<uid>. Responses are plain
// text, as the admin tooling expects.
func (h *VerifyHandler) VerifyTestUser(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		c.String(http.StatusBadRequest, "Missing UID")
		return
	}

	email, err := h.service.VerifyTestUser(c.Request.Context(), uid)
	if err != nil {
		h.logger.Error("Failed to verify test user", zap.String("uid", uid), zap.Error(err))
		c.String(http.StatusInternalServerError, "❌ Error: %s", err.Error())
		return
	}
	h.logger.Info("Test user verified", zap.String("uid", uid), zap.String("email", email))
	c.String(http.StatusOK, "✅ Verified: %s", email)
}
