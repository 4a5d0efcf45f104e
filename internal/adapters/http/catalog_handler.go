package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/application/services"
	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
)

// CatalogHandler serves the read-only space type and template catalog
type CatalogHandler struct {
	catalogService *services.CatalogService
	logger         *logger.Logger
}

func NewCatalogHandler(catalogService *services.CatalogService, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListSpaceTypes godoc
// @Summary List space types
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]entities.SpaceType
// @Router /space-types [get]
func (h *CatalogHandler) ListSpaceTypes(c echo.Context) error {
	spaceTypes, err := h.catalogService.ListSpaceTypes(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	if spaceTypes == nil {
		spaceTypes = []*entities.SpaceType{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": spaceTypes})
}

// ListTemplates godoc
// @Summary List task templates
// @Tags catalog
// @Produce json
// @Param space_type query string false "Only templates of this space type"
// @Success 200 {object} map[string][]entities.TaskTemplate
// @Router /task-templates [get]
func (h *CatalogHandler) ListTemplates(c echo.Context) error {
	spaceType := c.QueryParam("space_type")
	if len(spaceType) > 50 {
		return apiError(http.StatusBadRequest, "validation_error", "space_type is too long")
	}

	templates, err := h.catalogService.ListTemplates(c.Request().Context(), spaceType)
	if err != nil {
		return domainError(err)
	}
	if templates == nil {
		templates = []*entities.TaskTemplate{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": templates})
}
