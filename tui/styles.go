package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ThreadListWidth = 32 // fixed width for the conversation sidebar
	InputHeight     = 3  // compose box + border
)

// Color scheme
const (
	ColorPrimary   = lipgloss.Color("212") // pink
	ColorSecondary = lipgloss.Color("86")  // green
	ColorAccent    = lipgloss.Color("242") // gray
	ColorBorder    = lipgloss.Color("240") // dark gray
	ColorUnread    = lipgloss.Color("220") // yellow
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Conversation bubbles
	MyMessageStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Align(lipgloss.Right)

	TheirMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Align(lipgloss.Left)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
