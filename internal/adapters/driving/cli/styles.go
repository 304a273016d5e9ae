package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// theme is the colour palette for command output.
type theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

func defaultTheme() theme {
	return theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// styles are the lipgloss styles commands render with. The renderer
// follows the command's output, so piped output carries no escapes.
type styles struct {
	Title   lipgloss.Style
	Key     lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	t := defaultTheme()

	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(t.Primary),
		Key:     r.NewStyle().Foreground(t.Secondary),
		Muted:   r.NewStyle().Foreground(t.Muted),
		Success: r.NewStyle().Foreground(t.Success),
		Warning: r.NewStyle().Foreground(t.Warning),
		Error:   r.NewStyle().Bold(true).Foreground(t.Error),
	}
}

// formatTime renders Unix seconds, or "-" when unset.
func formatTime(sec int64) string {
	if sec <= 0 {
		return "-"
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}
