package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/application/services"
	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

// ProvisioningHandler creates tasks in bulk from catalog templates
type ProvisioningHandler struct {
	provisioningService *services.ProvisioningService
	logger              *logger.Logger
}

func NewProvisioningHandler(provisioningService *services.ProvisioningService, logger *logger.Logger) *ProvisioningHandler {
	return &ProvisioningHandler{
		provisioningService: provisioningService,
		logger:              logger,
	}
}

// BulkItemError identifies the template an item failed for
type BulkItemError struct {
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	TemplateID uuid.UUID `json:"template_id"`
}

// BulkItemResult is either {status:201, task} or {status, error}
type BulkItemResult struct {
	Status int                     `json:"status"`
	Task   *entities.TaskWithSpace `json:"task,omitempty"`
	Error  *BulkItemError          `json:"error,omitempty"`
}

type BulkResponse struct {
	Results []BulkItemResult `json:"results"`
}

// BulkFromTemplates godoc
// @Summary Create tasks from templates
// @Description Each item succeeds or fails on its own; results keep the order of the request
// @Tags spaces
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body ports.BulkProvisionRequest true "Items"
// @Success 207 {object} BulkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{id}/tasks/bulk-from-templates [post]
func (h *ProvisioningHandler) BulkFromTemplates(c echo.Context) error {
	spaceID, err := pathID(c, "space")
	if err != nil {
		return err
	}

	var req ports.BulkProvisionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	results, err := h.provisioningService.ProvisionFromTemplates(c.Request().Context(), getUserIDFromContext(c), spaceID, req.Items)
	if err != nil {
		return domainError(err)
	}

	resp := BulkResponse{Results: make([]BulkItemResult, 0, len(results))}
	for _, r := range results {
		resp.Results = append(resp.Results, bulkItem(r))
	}

	return c.JSON(http.StatusMultiStatus, resp)
}

func bulkItem(r ports.ItemResult) BulkItemResult {
	switch r := r.(type) {
	case ports.CreatedItem:
		return BulkItemResult{Status: http.StatusCreated, Task: r.Task}
	case ports.TemplateNotFoundItem:
		return itemError(http.StatusNotFound, "template_not_found", "Task template not found", r.Template)
	case ports.DuplicateTaskNameItem:
		return itemError(http.StatusConflict, "duplicate_task", "A task named \""+r.TaskName+"\" already exists in the space", r.Template)
	default:
		return itemError(http.StatusInternalServerError, "internal_error", "The task could not be created", r.TemplateID())
	}
}

func itemError(status int, code, message string, templateID uuid.UUID) BulkItemResult {
	return BulkItemResult{
		Status: status,
		Error:  &BulkItemError{Code: code, Message: message, TemplateID: templateID},
	}
}
