package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TextNormal   lipgloss.Color
	TextSelected lipgloss.Color
	TextDone     lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TextNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TextSelected: lipgloss.Color("#FFEAA7"), // Yellow
	TextDone:     lipgloss.Color("#636E72"), // Gray
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderText  lipgloss.Style
	HeaderCount lipgloss.Style

	// Filter tabs
	FilterTab       lipgloss.Style
	FilterTabActive lipgloss.Style

	// Task list
	TaskNormal     lipgloss.Style
	TaskSelected   lipgloss.Style
	TaskDone       lipgloss.Style
	CheckboxOpen   lipgloss.Style
	CheckboxDone   lipgloss.Style
	CursorSelected lipgloss.Style
	Empty          lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Messages
	ErrorMsg  lipgloss.Style
	NoticeMsg lipgloss.Style

	// Footer
	Footer lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			MarginBottom(1),
		HeaderText: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		HeaderCount: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FilterTab: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),
		FilterTabActive: lipgloss.NewStyle().
			Foreground(Colors.TextSelected).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(Colors.TextNormal),
		TaskSelected: lipgloss.NewStyle().
			Foreground(Colors.TextSelected).
			Bold(true),
		TaskDone: lipgloss.NewStyle().
			Foreground(Colors.TextDone).
			Strikethrough(true),
		CheckboxOpen: lipgloss.NewStyle().
			Foreground(Colors.Secondary),
		CheckboxDone: lipgloss.NewStyle().
			Foreground(Colors.Success),
		CursorSelected: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(0, 1).
			MarginTop(1),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			MarginTop(1),
		NoticeMsg: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			MarginTop(1),

		Footer: lipgloss.NewStyle().
			MarginTop(1),
	}
}
