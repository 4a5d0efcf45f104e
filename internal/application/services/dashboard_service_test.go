package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/clock"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

func TestDashboardService_GetSectionWindows(t *testing.T) {
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name       string
		query      ports.DashboardQuery
		wantFrom   *time.Time
		wantBefore time.Time
		wantSort   string
	}{
		{
			name:       "Given overdue When querying Then due before start of today",
			query:      ports.DashboardQuery{Section: entities.SectionOverdue},
			wantBefore: today,
			wantSort:   "due_date.asc",
		},
		{
			name:       "Given today When querying Then due within today",
			query:      ports.DashboardQuery{Section: entities.SectionToday, Sort: "name.desc"},
			wantFrom:   &today,
			wantBefore: tomorrow,
			wantSort:   "name.desc",
		},
		{
			name:       "Given upcoming with days ahead When querying Then due from tomorrow to horizon",
			query:      ports.DashboardQuery{Section: entities.SectionUpcoming, DaysAhead: 3},
			wantFrom:   &tomorrow,
			wantBefore: today.AddDate(0, 0, 3),
			wantSort:   "due_date.asc",
		},
		{
			name:       "Given all with an unknown sort When querying Then default horizon and sort",
			query:      ports.DashboardQuery{Section: entities.SectionAll, Sort: "recurrence.desc"},
			wantBefore: today.AddDate(0, 0, 7),
			wantSort:   "due_date.asc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen ports.TaskFilter
			repo := &mockTaskRepo{
				ListFunc: func(ctx context.Context, filter ports.TaskFilter) ([]*entities.TaskWithSpace, int, error) {
					seen = filter
					return nil, 0, nil
				},
			}
			svc := NewDashboardService(repo, clock.NewFixed(testNow), time.UTC, 7, nil, logger.NewNop())

			page, err := svc.GetSection(context.Background(), testUser, tt.query)
			if err != nil {
				t.Fatalf("GetSection() error = %v", err)
			}
			if page.Pagination.TotalPages != 1 || page.Pagination.Limit != 20 {
				t.Errorf("pagination = %+v", page.Pagination)
			}

			if (seen.DueFrom == nil) != (tt.wantFrom == nil) {
				t.Fatalf("DueFrom = %v, want %v", seen.DueFrom, tt.wantFrom)
			}
			if tt.wantFrom != nil && !seen.DueFrom.Equal(*tt.wantFrom) {
				t.Errorf("DueFrom = %v, want %v", *seen.DueFrom, *tt.wantFrom)
			}
			if seen.DueBefore == nil || !seen.DueBefore.Equal(tt.wantBefore) {
				t.Errorf("DueBefore = %v, want %v", seen.DueBefore, tt.wantBefore)
			}
			if got := seen.SortBy + "." + seen.SortOrder; got != tt.wantSort {
				t.Errorf("sort = %s, want %s", got, tt.wantSort)
			}
			if seen.UserID != testUser {
				t.Errorf("UserID = %s", seen.UserID)
			}
		})
	}
}

func TestDashboardService_Timezone(t *testing.T) {
	// 23:30 UTC on March 9 is already March 10 in Warsaw.
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	var seen ports.TaskFilter
	repo := &mockTaskRepo{
		ListFunc: func(ctx context.Context, filter ports.TaskFilter) ([]*entities.TaskWithSpace, int, error) {
			seen = filter
			return nil, 0, nil
		},
	}
	now := time.Date(2025, time.March, 9, 23, 30, 0, 0, time.UTC)
	svc := NewDashboardService(repo, clock.NewFixed(now), loc, 7, nil, logger.NewNop())

	if _, err := svc.GetSection(context.Background(), testUser, ports.DashboardQuery{Section: entities.SectionToday}); err != nil {
		t.Fatalf("GetSection() error = %v", err)
	}

	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)
	if !seen.DueFrom.Equal(want) {
		t.Errorf("DueFrom = %v, want %v", seen.DueFrom, want)
	}

	got := svc.Now()
	if !got.Equal(now) || got.Location() != loc {
		t.Errorf("Now() = %v, want %v in %s", got, now, loc)
	}
	if got.Day() != 10 {
		t.Errorf("Now() day = %d, want the local day 10", got.Day())
	}
}

func TestDashboardService_PageOutOfRange(t *testing.T) {
	repo := &mockTaskRepo{
		ListFunc: func(ctx context.Context, filter ports.TaskFilter) ([]*entities.TaskWithSpace, int, error) {
			return nil, 3, nil
		},
	}
	svc := NewDashboardService(repo, clock.NewFixed(testNow), time.UTC, 7, nil, logger.NewNop())

	_, err := svc.GetSection(context.Background(), testUser, ports.DashboardQuery{Section: entities.SectionAll, Page: 2, Limit: 5})
	if !errors.Is(err, entities.ErrPageOutOfRange) {
		t.Fatalf("error = %v, want ErrPageOutOfRange", err)
	}
}

func TestDashboardService_GetOverview(t *testing.T) {
	failing := errors.New("connection reset")
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	repo := &mockTaskRepo{
		ListFunc: func(ctx context.Context, filter ports.TaskFilter) ([]*entities.TaskWithSpace, int, error) {
			if filter.DueFrom != nil && filter.DueFrom.Equal(today) {
				return nil, 0, failing
			}
			return []*entities.TaskWithSpace{{Task: entities.Task{ID: uuid.New()}}}, 1, nil
		},
	}
	svc := NewDashboardService(repo, clock.NewFixed(testNow), time.UTC, 7, nil, logger.NewNop())

	overview, err := svc.GetOverview(context.Background(), testUser, 7, 5)
	if err != nil {
		t.Fatalf("GetOverview() error = %v", err)
	}

	want := []entities.DashboardSection{entities.SectionOverdue, entities.SectionToday, entities.SectionUpcoming}
	if len(overview.Sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(overview.Sections), len(want))
	}
	for i, section := range overview.Sections {
		if section.Section != want[i] {
			t.Errorf("section %d = %s, want %s", i, section.Section, want[i])
		}
	}

	if today := overview.Sections[1]; !errors.Is(today.Err, failing) || today.Page != nil {
		t.Errorf("today section = %+v, want the repository error", today)
	}
	for _, i := range []int{0, 2} {
		s := overview.Sections[i]
		if s.Err != nil || s.Page == nil || len(s.Page.Data) != 1 {
			t.Errorf("%s section = %+v, want one task", s.Section, s)
		}
		if s.Page != nil && s.Page.Pagination.Limit != 5 {
			t.Errorf("%s limit = %d, want 5", s.Section, s.Page.Pagination.Limit)
		}
	}
}
