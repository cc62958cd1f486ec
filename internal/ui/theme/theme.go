// Package theme holds the lipgloss styles used by CLI output.
package theme

import (
	"fmt"

	"charm.land/lipgloss/v2"
)

// Color palette, bright enough for a child reading over a parent's shoulder.
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Question = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Index prefixes numbered questions and options.
	Index = lipgloss.NewStyle().
		Foreground(Secondary)

	Tier = lipgloss.NewStyle().
		Foreground(Accent)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Summary = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// Mark renders a check or a cross.
func Mark(ok bool) string {
	if ok {
		return Correct.Render("✓")
	}
	return Incorrect.Render("✗")
}

// Score renders "correct/total (pct%)", colored by how well it went.
func Score(correct, total, percentage int) string {
	style := Incorrect
	switch {
	case percentage >= 90:
		style = Correct
	case percentage >= 60:
		style = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	}
	return style.Render(fmt.Sprintf("%d/%d (%d%%)", correct, total, percentage))
}
