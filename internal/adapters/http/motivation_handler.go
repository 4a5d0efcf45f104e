package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/application/services"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

type MotivationHandler struct {
	motivationService *services.MotivationService
	logger            *logger.Logger
}

func NewMotivationHandler(motivationService *services.MotivationService, logger *logger.Logger) *MotivationHandler {
	return &MotivationHandler{
		motivationService: motivationService,
		logger:            logger,
	}
}

// Generate godoc
// @Summary Generate a motivational message for a task
// @Tags motivation
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.GenerateMessageRequest true "Prompt"
// @Success 201 {object} entities.MotivationalMessage
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/motivational-messages/generate [post]
func (h *MotivationHandler) Generate(c echo.Context) error {
	taskID, err := pathID(c, "task")
	if err != nil {
		return err
	}

	var req ports.GenerateMessageRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	msg, err := h.motivationService.Generate(c.Request().Context(), getUserIDFromContext(c), taskID, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, msg)
}

// Latest godoc
// @Summary Latest motivational message of a task
// @Tags motivation
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.MotivationalMessage
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/motivational-messages/latest [get]
func (h *MotivationHandler) Latest(c echo.Context) error {
	taskID, err := pathID(c, "task")
	if err != nil {
		return err
	}

	msg, err := h.motivationService.Latest(c.Request().Context(), getUserIDFromContext(c), taskID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, msg)
}
