package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/infrastructure/metrics"
	"github.com/housekeep/core/internal/ports"
)

// DashboardSortFields lists the sort keys a dashboard section accepts
var DashboardSortFields = []string{"due_date", "name", "created_at", "updated_at"}

// DashboardService buckets a user's tasks into overdue, today and upcoming
// windows measured from the start of the current day in loc.
type DashboardService struct {
	taskRepo         ports.TaskRepository
	clock            ports.Clock
	loc              *time.Location
	defaultDaysAhead int
	metrics          *metrics.Metrics
	logger           *logger.Logger
}

func NewDashboardService(taskRepo ports.TaskRepository, clock ports.Clock, loc *time.Location, defaultDaysAhead int, m *metrics.Metrics, logger *logger.Logger) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	if defaultDaysAhead < 1 {
		defaultDaysAhead = 7
	}
	return &DashboardService{
		taskRepo:         taskRepo,
		clock:            clock,
		loc:              loc,
		defaultDaysAhead: defaultDaysAhead,
		metrics:          m,
		logger:           logger.WithComponent("dashboard"),
	}
}

// Now is the instant section windows are measured from, in the dashboard timezone
func (s *DashboardService) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

// GetSection returns one page of the tasks falling into q.Section
func (s *DashboardService) GetSection(ctx context.Context, userID uuid.UUID, q ports.DashboardQuery) (*ports.TaskPage, error) {
	return s.section(ctx, userID, q, s.clock.Now())
}

// GetOverview loads the overdue, today and upcoming sections concurrently.
// A failing section carries its own error and does not fail the others.
func (s *DashboardService) GetOverview(ctx context.Context, userID uuid.UUID, daysAhead, limit int) (*ports.DashboardOverview, error) {
	now := s.Now()
	sections := []entities.DashboardSection{entities.SectionOverdue, entities.SectionToday, entities.SectionUpcoming}
	results := make([]ports.SectionResult, len(sections))

	g, gctx := errgroup.WithContext(ctx)
	for i, section := range sections {
		i, section := i, section
		g.Go(func() error {
			page, err := s.section(gctx, userID, ports.DashboardQuery{
				Section:   section,
				DaysAhead: daysAhead,
				Limit:     limit,
			}, now)
			if err != nil {
				s.logger.ForUser(userID).Errorw("Dashboard section failed", "section", section, "error", err)
			}
			results[i] = ports.SectionResult{Section: section, Page: page, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return &ports.DashboardOverview{GeneratedAt: now, Sections: results}, nil
}

func (s *DashboardService) section(ctx context.Context, userID uuid.UUID, q ports.DashboardQuery, now time.Time) (*ports.TaskPage, error) {
	if !q.Section.IsValid() {
		return nil, fmt.Errorf("unknown dashboard section %q", q.Section)
	}

	daysAhead := q.DaysAhead
	if daysAhead < 1 {
		daysAhead = s.defaultDaysAhead
	}
	page, limit := normalizePage(q.Page, q.Limit)
	sortBy, sortOrder := ports.ParseSort(q.Sort, "due_date", "asc")
	if !isDashboardSortField(sortBy) {
		sortBy, sortOrder = "due_date", "asc"
	}

	from, to := q.Section.Window(now.In(s.loc), daysAhead)

	s.metrics.DashboardQuery(string(q.Section))

	tasks, total, err := s.taskRepo.List(ctx, ports.TaskFilter{
		UserID:    userID,
		DueFrom:   from,
		DueBefore: &to,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    ports.Offset(page, limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s tasks: %w", q.Section, err)
	}

	pagination := ports.NewPagination(page, limit, total)
	if pagination.OutOfRange() {
		return nil, fmt.Errorf("page %d of %d: %w", page, pagination.TotalPages, entities.ErrPageOutOfRange)
	}

	return &ports.TaskPage{Data: tasks, Pagination: pagination}, nil
}

func isDashboardSortField(field string) bool {
	for _, f := range DashboardSortFields {
		if f == field {
			return true
		}
	}
	return false
}
