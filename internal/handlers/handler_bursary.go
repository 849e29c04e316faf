package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/campusfin/student_ledger_app/internal/middleware"
)

// bursaryHandler handles HTTP requests related to bursary policies.
type bursaryHandler struct {
	bursaryService portssvc.BursarySvcFacade
}

// newBursaryHandler creates a new bursaryHandler.
func newBursaryHandler(bs portssvc.BursarySvcFacade) *bursaryHandler {
	return &bursaryHandler{
		bursaryService: bs,
	}
}

// registerBursaryRoutes registers routes related to bursaries.
func registerBursaryRoutes(rg *gin.RouterGroup, bursaryService portssvc.BursarySvcFacade) {
	h := newBursaryHandler(bursaryService)

	students := rg.Group("/students/:studentID/bursaries")
	{
		students.POST("", h.createBursary)
		students.GET("", h.listBursaries)
	}

	bursaries := rg.Group("/bursaries")
	{
		bursaries.GET("/:bursaryID", h.getBursary)
		bursaries.PUT("/:bursaryID", h.updateBursary)
		bursaries.DELETE("/:bursaryID", h.deactivateBursary)
	}
}

// createBursary godoc
// @Summary Grant a bursary to a student
// @Description Creates a percentage discount policy. It affects charges computed after creation; nothing is re-billed.
// @Tags bursaries
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   bursary body dto.CreateBursaryRequest true "Bursary details"
// @Success 201 {object} dto.BursaryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 500 {object} map[string]string "Failed to create bursary"
// @Security BearerAuth
// @Router /students/{studentID}/bursaries [post]
func (h *bursaryHandler) createBursary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var req dto.CreateBursaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBursary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bursary, err := h.bursaryService.CreateBursary(c.Request.Context(), studentID, req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating bursary", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Student not found creating bursary", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create bursary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bursary"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBursaryResponse(bursary))
}

// listBursaries godoc
// @Summary List a student's bursaries
// @Description Retrieves all bursaries for a student, or only those in effect right now when inEffect=true.
// @Tags bursaries
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   inEffect query bool false "Only bursaries applicable at the current time"
// @Success 200 {array} dto.BursaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bursaries"
// @Security BearerAuth
// @Router /students/{studentID}/bursaries [get]
func (h *bursaryHandler) listBursaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var bursaries []dto.BursaryResponse
	if c.Query("inEffect") == "true" {
		inEffect, err := h.bursaryService.ListBursariesInEffect(c.Request.Context(), studentID, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list in-effect bursaries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bursaries"})
			return
		}
		bursaries = dto.ToBursaryResponses(inEffect)
	} else {
		all, err := h.bursaryService.ListBursariesByStudent(c.Request.Context(), studentID)
		if err != nil {
			logger.Error("Failed to list bursaries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bursaries"})
			return
		}
		bursaries = dto.ToBursaryResponses(all)
	}

	c.JSON(http.StatusOK, bursaries)
}

// getBursary godoc
// @Summary Get a bursary by ID
// @Tags bursaries
// @Produce  json
// @Param   bursaryID path string true "Bursary ID"
// @Success 200 {object} dto.BursaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bursary not found"
// @Failure 500 {object} map[string]string "Failed to retrieve bursary"
// @Security BearerAuth
// @Router /bursaries/{bursaryID} [get]
func (h *bursaryHandler) getBursary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bursaryID := c.Param("bursaryID")

	bursary, err := h.bursaryService.GetBursaryByID(c.Request.Context(), bursaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bursary not found"})
		} else {
			logger.Error("Failed to get bursary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bursary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBursaryResponse(bursary))
}

// updateBursary godoc
// @Summary Update a bursary
// @Description Updates an existing bursary. Only future charges see the change.
// @Tags bursaries
// @Accept  json
// @Produce  json
// @Param   bursaryID path string true "Bursary ID"
// @Param   bursary body dto.UpdateBursaryRequest true "Fields to update"
// @Success 200 {object} dto.BursaryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bursary not found"
// @Failure 500 {object} map[string]string "Failed to update bursary"
// @Security BearerAuth
// @Router /bursaries/{bursaryID} [put]
func (h *bursaryHandler) updateBursary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bursaryID := c.Param("bursaryID")

	var req dto.UpdateBursaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBursary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bursary, err := h.bursaryService.UpdateBursary(c.Request.Context(), bursaryID, req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating bursary", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bursary not found"})
		} else {
			logger.Error("Failed to update bursary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bursary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBursaryResponse(bursary))
}

// deactivateBursary godoc
// @Summary Deactivate a bursary
// @Description Marks a bursary inactive. Entries already computed under it are untouched.
// @Tags bursaries
// @Produce  json
// @Param   bursaryID path string true "Bursary ID"
// @Success 204 "Deactivated"
// @Failure 400 {object} map[string]string "Bursary already inactive"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bursary not found"
// @Failure 500 {object} map[string]string "Failed to deactivate bursary"
// @Security BearerAuth
// @Router /bursaries/{bursaryID} [delete]
func (h *bursaryHandler) deactivateBursary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bursaryID := c.Param("bursaryID")

	actorUserID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.bursaryService.DeactivateBursary(c.Request.Context(), bursaryID, actorUserID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bursary not found"})
		} else {
			logger.Error("Failed to deactivate bursary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate bursary"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
