// Package terminal renders dashboard sections for the command line.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/ports"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// RenderSection draws one dashboard section as a bordered table
func RenderSection(w io.Writer, section entities.DashboardSection, page *ports.TaskPage, now time.Time) error {
	lines := []string{titleStyle.Render(sectionTitle(section))}

	if len(page.Data) == 0 {
		lines = append(lines, mutedStyle.Render("Nothing to do here."))
	}

	for _, task := range page.Data {
		due := task.DueDate.In(now.Location()).Format("Mon 02 Jan")
		line := fmt.Sprintf("%-24s %-16s %s  %s",
			truncate(task.Name, 24),
			truncate(task.Space.Name, 16),
			due,
			mutedStyle.Render(fmt.Sprintf("every %d %s", task.RecurrenceValue, task.RecurrenceUnit)),
		)
		if task.IsOverdue(now) {
			line = overdueStyle.Render(line)
		}
		if task.Status == entities.TaskStatusPostponed {
			line += mutedStyle.Render(fmt.Sprintf(" (postponed %d/%d)", task.PostponementCount, entities.MaxPostponements))
		}
		lines = append(lines, line)
	}

	p := page.Pagination
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("page %d/%d, %d tasks", p.Page, p.TotalPages, p.Total)))

	_, err := fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
	return err
}

// RenderOverview draws each section of the overview, or its error
func RenderOverview(w io.Writer, overview *ports.DashboardOverview) error {
	for _, s := range overview.Sections {
		if s.Err != nil {
			msg := lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render(sectionTitle(s.Section)),
				overdueStyle.Render("unavailable: "+s.Err.Error()),
			)
			if _, err := fmt.Fprintln(w, boxStyle.Render(msg)); err != nil {
				return err
			}
			continue
		}
		if err := RenderSection(w, s.Section, s.Page, overview.GeneratedAt); err != nil {
			return err
		}
	}
	return nil
}

func sectionTitle(s entities.DashboardSection) string {
	switch s {
	case entities.SectionOverdue:
		return "Overdue"
	case entities.SectionToday:
		return "Today"
	case entities.SectionUpcoming:
		return "Upcoming"
	default:
		return "All tasks"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
