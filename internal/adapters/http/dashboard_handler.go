package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/application/services"
	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

// DashboardHandler serves the due-date sections of the dashboard
type DashboardHandler struct {
	dashboardService *services.DashboardService
	defaultDaysAhead int
	logger           *logger.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, defaultDaysAhead int, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		defaultDaysAhead: defaultDaysAhead,
		logger:           logger,
	}
}

type dashboardParams struct {
	Section   string `validate:"oneof=overdue today upcoming all"`
	DaysAhead int    `validate:"min=1,max=365"`
	Page      int    `validate:"min=1"`
	Limit     int    `validate:"min=1,max=100"`
	Sort      string `validate:"oneof=due_date.asc due_date.desc name.asc name.desc created_at.asc created_at.desc updated_at.asc updated_at.desc"`
}

// GetTasks godoc
// @Summary Dashboard section
// @Description Tasks of one due-date window measured from the start of today
// @Tags dashboard
// @Produce json
// @Param section query string false "overdue|today|upcoming|all" default(all)
// @Param days_ahead query int false "Horizon of upcoming and all" default(7)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param sort query string false "due_date|name|created_at|updated_at with .asc or .desc" default(due_date.asc)
// @Success 200 {object} PaginatedResponse[entities.TaskWithSpace]
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/tasks [get]
func (h *DashboardHandler) GetTasks(c echo.Context) error {
	params := dashboardParams{
		Section:   string(entities.SectionAll),
		DaysAhead: h.defaultDaysAhead,
		Page:      1,
		Limit:     20,
		Sort:      "due_date.asc",
	}

	err := echo.QueryParamsBinder(c).
		String("section", &params.Section).
		Int("days_ahead", &params.DaysAhead).
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

	page, err := h.dashboardService.GetSection(c.Request().Context(), getUserIDFromContext(c), ports.DashboardQuery{
		Section:   entities.DashboardSection(params.Section),
		DaysAhead: params.DaysAhead,
		Page:      params.Page,
		Limit:     params.Limit,
		Sort:      params.Sort,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, paginated(page))
}

// SectionPayload is one section of the overview: data and pagination, or only error
type SectionPayload struct {
	Data       []*entities.TaskWithSpace `json:"data"`
	Pagination *ports.Pagination         `json:"pagination,omitempty"`
	Error      *ErrorBody                `json:"error,omitempty"`
}

func (p SectionPayload) MarshalJSON() ([]byte, error) {
	if p.Error != nil {
		return json.Marshal(struct {
			Error *ErrorBody `json:"error"`
		}{p.Error})
	}
	data := p.Data
	if data == nil {
		data = []*entities.TaskWithSpace{}
	}
	return json.Marshal(struct {
		Data       []*entities.TaskWithSpace `json:"data"`
		Pagination *ports.Pagination         `json:"pagination,omitempty"`
	}{data, p.Pagination})
}

type OverviewResponse struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Overdue     SectionPayload `json:"overdue"`
	Today       SectionPayload `json:"today"`
	Upcoming    SectionPayload `json:"upcoming"`
}

// GetOverview godoc
// @Summary Dashboard overview
// @Description Overdue, today and upcoming sections in one response; a failing section reports its own error
// @Tags dashboard
// @Produce json
// @Param days_ahead query int false "Horizon of upcoming" default(7)
// @Param limit query int false "Tasks per section" default(20)
// @Success 200 {object} OverviewResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetOverview(c echo.Context) error {
	params := dashboardParams{
		Section:   string(entities.SectionAll),
		DaysAhead: h.defaultDaysAhead,
		Page:      1,
		Limit:     20,
		Sort:      "due_date.asc",
	}

	err := echo.QueryParamsBinder(c).
		Int("days_ahead", &params.DaysAhead).
		Int("limit", &params.Limit).
		BindError()
	if err != nil {
		return apiError(http.StatusBadRequest, "validation_error", "Invalid query parameters")
	}
	if err := c.Validate(&params); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	overview, err := h.dashboardService.GetOverview(c.Request().Context(), getUserIDFromContext(c), params.DaysAhead, params.Limit)
	if err != nil {
		return domainError(err)
	}

	resp := OverviewResponse{GeneratedAt: overview.GeneratedAt}
	for _, s := range overview.Sections {
		payload := SectionPayload{}
		if s.Err != nil {
			body := domainError(s.Err).Message.(ErrorBody)
			payload.Error = &body
		} else {
			pagination := s.Page.Pagination
			payload.Data = s.Page.Data
			payload.Pagination = &pagination
		}

		switch s.Section {
		case entities.SectionOverdue:
			resp.Overdue = payload
		case entities.SectionToday:
			resp.Today = payload
		case entities.SectionUpcoming:
			resp.Upcoming = payload
		}
	}

	return c.JSON(http.StatusOK, resp)
}
