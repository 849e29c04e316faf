package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/campusfin/student_ledger_app/internal/middleware"
)

// ledgerHandler handles HTTP requests mutating student accounts.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers the account mutation and statement routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:studentID/charges", h.applyCharge)
		accounts.POST("/:studentID/payments", h.applyPayment)
		accounts.POST("/:studentID/adjustments", h.applyAdjustment)
		accounts.GET("/:studentID/statement", h.getStatement)
	}

	entries := rg.Group("/entries")
	{
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// respondLedgerError maps the service error taxonomy onto HTTP statuses.
// Conflicts (a stale version that outlived its retries, or a second reversal
// of the same entry) are 409 so callers know a retry or a re-read is the fix.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount) || errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Target not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyReversed) || errors.Is(err, apperrors.ErrConcurrentModification) || errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrOverflow):
		logger.Warn("Amount out of range", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Ledger operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// applyCharge godoc
// @Summary Charge a student's account
// @Description Adds a charge to the student's account, applying the best in-effect bursary. The account is created on first use.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   charge body dto.ChargeRequest true "Charge details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 409 {object} map[string]string "Account contended beyond retry budget"
// @Failure 500 {object} map[string]string "Failed to apply charge"
// @Security BearerAuth
// @Router /accounts/{studentID}/charges [post]
func (h *ledgerHandler) applyCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyCharge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.ApplyCharge(c.Request.Context(), studentID, req, actorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "apply charge")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// applyPayment godoc
// @Summary Record a payment on a student's account
// @Description Records a confirmed payment against the student's account. Bursaries never apply to payments.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 409 {object} map[string]string "Account contended beyond retry budget"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /accounts/{studentID}/payments [post]
func (h *ledgerHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.ApplyPayment(c.Request.Context(), studentID, req, actorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// applyAdjustment godoc
// @Summary Apply a manual adjustment to a student's account
// @Description Records a signed correction. Positive amounts increase the balance owed, negative amounts decrease it.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   adjustment body dto.AdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 409 {object} map[string]string "Account contended beyond retry budget"
// @Failure 500 {object} map[string]string "Failed to apply adjustment"
// @Security BearerAuth
// @Router /accounts/{studentID}/adjustments [post]
func (h *ledgerHandler) applyAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.ApplyAdjustment(c.Request.Context(), studentID, req, actorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "apply adjustment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a ledger entry
// @Description Appends a counter-entry negating a prior entry. The original row is never modified; an entry can be reversed at most once.
// @Tags ledger
// @Produce  json
// @Param   entryID path string true "Entry ID to reverse"
// @Success 201 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Security BearerAuth
// @Router /entries/{entryID}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.ledgerService.Reverse(c.Request.Context(), entryID, actorUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "reverse entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

// getStatement godoc
// @Summary Get a student's account statement
// @Description Retrieves the current balance and a page of ledger entries, newest first.
// @Tags ledger
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No account exists for this student"
// @Failure 500 {object} map[string]string "Failed to retrieve statement"
// @Security BearerAuth
// @Router /accounts/{studentID}/statement [get]
func (h *ledgerHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	statement, err := h.ledgerService.GetStatement(c.Request.Context(), studentID, params)
	if err != nil {
		respondLedgerError(c, logger, err, "retrieve statement")
		return
	}

	c.JSON(http.StatusOK, statement)
}
