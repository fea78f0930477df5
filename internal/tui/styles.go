package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Good      = lipgloss.Color("#95E1A3")
	Bad       = lipgloss.Color("#FF6B6B")
	Accent    = lipgloss.Color("#FFE66D")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text)

	SelectedStyle = lipgloss.NewStyle().
			Background(Surface).
			Bold(true)

	PriceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Good)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Bad)

	MessageStyle = lipgloss.NewStyle().
			Foreground(Accent)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)
)
