package tui

import "github.com/charmbracelet/lipgloss"

// LINE green for the input and focus, grays for chrome.
var (
	lineGreen = lipgloss.Color("#06C755")
	faint     = lipgloss.Color("244")
	frame     = lipgloss.Color("238")
	cursorFg  = lipgloss.Color("11")
)

var (
	stylePrompt = lipgloss.NewStyle().Foreground(lineGreen).Bold(true)
	styleQuery  = lipgloss.NewStyle().Foreground(lineGreen)

	styleCursor  = lipgloss.NewStyle().Foreground(cursorFg).Bold(true)
	styleAuthor  = lipgloss.NewStyle().Foreground(lineGreen)
	styleNotice  = lipgloss.NewStyle().Foreground(faint).Italic(true)
	styleSnippet = lipgloss.NewStyle().Foreground(faint)

	stylePanel        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(frame)
	styleFocusedPanel = stylePanel.BorderForeground(lineGreen)

	styleStatusBar = lipgloss.NewStyle().Foreground(faint).Padding(0, 1)
)
