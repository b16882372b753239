package tui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mrtimely/timely-cli/internal/domain"
)

// terminalWidth returns the current terminal width, defaulting to 80.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// renderTimelineStrip draws the session timeline as a single proportional bar.
// Each interval gets a run of blocks in its activity's border color; gaps and
// breaks render dim. Returns "" when there is nothing to draw.
func renderTimelineStrip(entries []domain.TimelineEntry, width int, now time.Time) string {
	if len(entries) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}

	start := entries[0].StartTime
	end := now.UnixMilli()
	if last := entries[len(entries)-1]; last.EndTime != nil {
		end = *last.EndTime
	}
	total := end - start
	if total <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	cursor := start
	for _, entry := range entries {
		// Gap before this entry is idle time
		if entry.StartTime > cursor {
			cells := blockCells(entry.StartTime-cursor, total, width)
			b.WriteString(dim.Render(strings.Repeat("░", cells)))
		}

		entryEnd := end
		if entry.EndTime != nil {
			entryEnd = *entry.EndTime
		}
		cells := blockCells(entryEnd-entry.StartTime, total, width)

		if entry.ActivityID == nil || entry.Colors == nil {
			b.WriteString(dim.Render(strings.Repeat("░", cells)))
		} else {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Colors.Border))
			b.WriteString(style.Render(strings.Repeat("█", cells)))
		}
		cursor = entryEnd
	}

	return b.String()
}

// blockCells converts an interval to a cell count, keeping short intervals
// visible with at least one cell.
func blockCells(interval, total int64, width int) int {
	cells := int(float64(interval) / float64(total) * float64(width))
	if cells < 1 {
		cells = 1
	}
	return cells
}
