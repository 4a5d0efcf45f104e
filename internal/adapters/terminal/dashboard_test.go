package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/domain/recurrence"
	"github.com/housekeep/core/internal/ports"
)

func TestRenderSection(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	page := &ports.TaskPage{
		Data: []*entities.TaskWithSpace{
			{
				Task: entities.Task{
					Name:              "Clean the toilet",
					RecurrenceValue:   7,
					RecurrenceUnit:    recurrence.Days,
					DueDate:           now.AddDate(0, 0, -2),
					Status:            entities.TaskStatusPostponed,
					PostponementCount: 2,
				},
				Space: entities.SpaceSummary{Name: "Bathroom"},
			},
		},
		Pagination: ports.NewPagination(1, 20, 1),
	}

	var buf bytes.Buffer
	if err := RenderSection(&buf, entities.SectionOverdue, page, now); err != nil {
		t.Fatalf("RenderSection() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Overdue", "Clean the toilet", "Bathroom", "Sat 08 Mar", "every 7 days", "postponed 2/3", "page 1/1, 1 tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderOverview(t *testing.T) {
	overview := &ports.DashboardOverview{
		GeneratedAt: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		Sections: []ports.SectionResult{
			{Section: entities.SectionOverdue, Page: &ports.TaskPage{Pagination: ports.NewPagination(1, 20, 0)}},
			{Section: entities.SectionToday, Err: errors.New("timeout")},
		},
	}

	var buf bytes.Buffer
	if err := RenderOverview(&buf, overview); err != nil {
		t.Fatalf("RenderOverview() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Nothing to do here.", "Today", "unavailable: timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Kitchen", 10); got != "Kitchen" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("Descale the kettle", 8); got != "Descale…" {
		t.Errorf("truncate long = %q", got)
	}
}
