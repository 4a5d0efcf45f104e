package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/application/services"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

// SpaceHandler handles space-related requests
type SpaceHandler struct {
	spaceService *services.SpaceService
	logger       *logger.Logger
}

// NewSpaceHandler creates a new space handler
func NewSpaceHandler(spaceService *services.SpaceService, logger *logger.Logger) *SpaceHandler {
	return &SpaceHandler{
		spaceService: spaceService,
		logger:       logger,
	}
}

type spaceListParams struct {
	Search string `validate:"max=100"`
	Page   int    `validate:"min=1"`
	Limit  int    `validate:"min=1,max=100"`
	Sort   string `validate:"oneof=created_at.asc created_at.desc name.asc name.desc"`
}

// ListSpaces godoc
// @Summary List spaces
// @Tags spaces
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param sort query string false "created_at.asc|created_at.desc|name.asc|name.desc" default(created_at.desc)
// @Success 200 {object} PaginatedResponse[entities.Space]
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces [get]
func (h *SpaceHandler) ListSpaces(c echo.Context) error {
	params := spaceListParams{Page: 1, Limit: 20, Sort: "created_at.desc"}

	err := echo.QueryParamsBinder(c).
		String("search", &params.Search).
		Int("page", &params.Page).
		Int("limit", &params.Limit).
		String("sort", &params.Sort).
		BindError()
	if err != nil {
		return apiError(http.StatusBadRequest, "validation_error", "Invalid query parameters")
	}
	if err := c.Validate(&params); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	page, err := h.spaceService.ListSpaces(c.Request().Context(), getUserIDFromContext(c), ports.SpaceListQuery{
		Search: params.Search,
		Page:   params.Page,
		Limit:  params.Limit,
		Sort:   params.Sort,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, paginated(page))
}

// CreateSpace godoc
// @Summary Create a space
// @Tags spaces
// @Accept json
// @Produce json
// @Param request body ports.CreateSpaceRequest true "Space data"
// @Success 201 {object} entities.Space
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces [post]
func (h *SpaceHandler) CreateSpace(c echo.Context) error {
	var req ports.CreateSpaceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	space, err := h.spaceService.CreateSpace(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, space)
}

// GetSpace godoc
// @Summary Get space by ID
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} entities.Space
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{id} [get]
func (h *SpaceHandler) GetSpace(c echo.Context) error {
	id, err := pathID(c, "space")
	if err != nil {
		return err
	}

	space, err := h.spaceService.GetSpace(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, space)
}

// UpdateSpace godoc
// @Summary Rename a space or change its icon
// @Tags spaces
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body ports.UpdateSpaceRequest true "Changes"
// @Success 200 {object} entities.Space
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{id} [patch]
func (h *SpaceHandler) UpdateSpace(c echo.Context) error {
	id, err := pathID(c, "space")
	if err != nil {
		return err
	}

	var req ports.UpdateSpaceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	space, err := h.spaceService.UpdateSpace(c.Request().Context(), getUserIDFromContext(c), id, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, space)
}

// DeleteSpace godoc
// @Summary Delete a space and its tasks
// @Tags spaces
// @Param id path string true "Space ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /spaces/{id} [delete]
func (h *SpaceHandler) DeleteSpace(c echo.Context) error {
	id, err := pathID(c, "space")
	if err != nil {
		return err
	}

	if err := h.spaceService.DeleteSpace(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
