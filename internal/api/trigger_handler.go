package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"playpal-backend-go/internal/core"
	"playpal-backend-go/internal/middleware"
	"playpal-backend-go/internal/trigger"
)

// maxEventBytes bounds an event body: two snapshots of at most 1 MiB each
// plus envelope.
const maxEventBytes = 4 << 20

// TriggerHandler receives Firestore document events pushed by the platform.
type TriggerHandler struct {
	service core.NotificationService
	logger  *zap.Logger
}

// NewTriggerHandler creates a new TriggerHandler.
func NewTriggerHandler(service core.NotificationService, logger *zap.Logger) *TriggerHandler {
	return &TriggerHandler{service: service, logger: logger}
}

// decode reads the event body. On failure it has already answered 400.
func (h *TriggerHandler) decode(c *gin.Context) (*trigger.Event, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEventBytes)
	event, err := trigger.Decode(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Malformed event", Details: err.Error()})
		return nil, false
	}
	return event, true
}

// respond answers 200 in every case: a failed workflow is logged and
// reported as noop so the platform does not treat it as a delivery failure.
func (h *TriggerHandler) respond(c *gin.Context, name string, report core.Report, err error) {
	if err != nil {
		h.logger.Error("Notification workflow failed",
			zap.String("trigger", name),
			zap.String("invocation_id", report.InvocationID),
			zap.Stringer("classification", report.Classification),
			zap.Error(err))
		// No report body: counters of a failed run are partial.
		c.Set(middleware.OutcomeKey, core.OutcomeNoop)
		c.JSON(http.StatusOK, TriggerResponse{Outcome: core.OutcomeNoop, InvocationID: report.InvocationID})
		return
	}
	c.Set(middleware.OutcomeKey, report.Outcome())
	c.JSON(http.StatusOK, TriggerResponse{
		Outcome:      report.Outcome(),
		InvocationID: report.InvocationID,
		Report:       &report,
	})
}

// MatchStatus handles POST /triggers/match-status.
func (h *TriggerHandler) MatchStatus(c *gin.Context) {
	event, ok := h.decode(c)
	if !ok {
		return
	}
	change, err := event.MatchChange()
	if err != nil {
		// Wrong document path or undecodable fields.
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Event is not a match update", Details: err.Error()})
		return
	}
	report, err := h.service.HandleMatchUpdate(c.Request.Context(), change)
	h.respond(c, "match-status", report, err)
}

// PaymentDecision handles POST /triggers/payment-decision.
func (h *TriggerHandler) PaymentDecision(c *gin.Context) {
	event, ok := h.decode(c)
	if !ok {
		return
	}
	change, err := event.PaymentChange()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Event is not a payment update", Details: err.Error()})
		return
	}
	report, err := h.service.HandlePaymentUpdate(c.Request.Context(), change)
	h.respond(c, "payment-decision", report, err)
}
