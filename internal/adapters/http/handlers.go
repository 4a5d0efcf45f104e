package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/ports"
)

// UserContextKey is where the auth middleware stores the caller's user id
const UserContextKey = "user"

// Handlers groups the handlers mounted under /api/v1
type Handlers struct {
	Tasks        *TaskHandler
	Spaces       *SpaceHandler
	Catalog      *CatalogHandler
	Dashboard    *DashboardHandler
	Provisioning *ProvisioningHandler
	Motivation   *MotivationHandler
}

// RegisterRoutes mounts the API on g
func RegisterRoutes(g *echo.Group, h Handlers) {
	g.GET("/dashboard", h.Dashboard.GetOverview)
	g.GET("/dashboard/tasks", h.Dashboard.GetTasks)

	tasks := g.Group("/tasks")
	tasks.GET("", h.Tasks.ListTasks)
	tasks.POST("", h.Tasks.CreateTask)
	tasks.GET("/:id", h.Tasks.GetTask)
	tasks.PATCH("/:id", h.Tasks.EditRecurrence)
	tasks.DELETE("/:id", h.Tasks.DeleteTask)
	tasks.POST("/:id/complete", h.Tasks.CompleteTask)
	tasks.POST("/:id/postpone", h.Tasks.PostponeTask)
	tasks.POST("/:id/motivational-messages/generate", h.Motivation.Generate)
	tasks.GET("/:id/motivational-messages/latest", h.Motivation.Latest)

	spaces := g.Group("/spaces")
	spaces.GET("", h.Spaces.ListSpaces)
	spaces.POST("", h.Spaces.CreateSpace)
	spaces.GET("/:id", h.Spaces.GetSpace)
	spaces.PATCH("/:id", h.Spaces.UpdateSpace)
	spaces.DELETE("/:id", h.Spaces.DeleteSpace)
	spaces.POST("/:id/tasks/bulk-from-templates", h.Provisioning.BulkFromTemplates)

	g.GET("/space-types", h.Catalog.ListSpaceTypes)
	g.GET("/task-templates", h.Catalog.ListTemplates)
}

// PaginatedResponse is the envelope of every list endpoint
type PaginatedResponse[T any] struct {
	Data       []T              `json:"data"`
	Pagination ports.Pagination `json:"pagination"`
}

func paginated[T any](page *ports.Page[T]) PaginatedResponse[T] {
	data := page.Data
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{Data: data, Pagination: page.Pagination}
}

// Utility functions

func getUserIDFromContext(c echo.Context) uuid.UUID {
	userID, ok := c.Get(UserContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func pathID(c echo.Context, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apiError(http.StatusBadRequest, "validation_error", "Invalid "+what+" ID format")
	}
	return id, nil
}

// bindBody decodes a JSON body; malformed input is a 400 regardless of the
// endpoint's validation status.
func bindBody(c echo.Context, dest interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dest); err != nil {
		return badRequest("Invalid request body")
	}
	return nil
}
