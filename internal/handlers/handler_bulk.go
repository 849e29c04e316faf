package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/campusfin/student_ledger_app/internal/middleware"
)

// bulkHandler handles batch charging requests.
type bulkHandler struct {
	bulkService portssvc.BulkSvcFacade
}

// newBulkHandler creates a new bulkHandler.
func newBulkHandler(bs portssvc.BulkSvcFacade) *bulkHandler {
	return &bulkHandler{
		bulkService: bs,
	}
}

// registerBulkRoutes registers the bulk charge route. One bulk call can touch
// hundreds of accounts, so it carries its own rate limit.
func registerBulkRoutes(rg *gin.RouterGroup, bulkService portssvc.BulkSvcFacade, rateLimit gin.HandlerFunc) {
	h := newBulkHandler(bulkService)

	charges := rg.Group("/charges")
	{
		charges.POST("/bulk", rateLimit, h.bulkCharge)
	}
}

// bulkCharge godoc
// @Summary Charge many students in one call
// @Description Applies the same charge to every listed student. Items are independent: failures are reported per student and never roll back siblings. Always returns the complete tally.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkChargeRequest true "Bulk charge details"
// @Success 200 {object} dto.BulkChargeResponse
// @Failure 400 {object} map[string]string "Invalid input, amount, or batch size"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to run bulk charge"
// @Security BearerAuth
// @Router /charges/bulk [post]
func (h *bulkHandler) bulkCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkCharge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.bulkService.ChargeMany(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "run bulk charge")
		return
	}

	// 200 even with partial failure; the body carries the per-item outcomes.
	c.JSON(http.StatusOK, dto.ToBulkChargeResponse(result))
}
