package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskmatrix/internal/todo"
)

// Quadrant colors, in todo.Categories order.
var quadrantColors = []lipgloss.Color{
	lipgloss.Color("#EF5350"),
	lipgloss.Color("#64B5F6"),
	lipgloss.Color("#FFB74D"),
	lipgloss.Color("#90A4AE"),
}

var (
	poolColor   = lipgloss.Color("#B39DDB")
	dayColor    = lipgloss.Color("#81C784")
	focusColor  = lipgloss.Color("#FFFFFF")
	mutedColor  = lipgloss.Color("#757575")
	errorColor  = lipgloss.Color("#E57373")
	statusColor = lipgloss.Color("#A5D6A7")

	titleStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(mutedColor)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(focusColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	statusStyle  = lipgloss.NewStyle().Foreground(statusColor)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(focusColor)
	panelPadding = 1
)

// panelColor returns the accent color of p.
func panelColor(p Panel) lipgloss.Color {
	if c, ok := p.Category(); ok {
		for i, known := range todo.Categories {
			if c == known {
				return quadrantColors[i]
			}
		}
	}
	if p.IsDay() {
		return dayColor
	}
	return poolColor
}

// panelStyle returns the bordered box style for p at the given outer size.
func panelStyle(p Panel, width, height int, focused bool) lipgloss.Style {
	border := lipgloss.NormalBorder()
	color := panelColor(p)
	if focused {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Padding(0, panelPadding).
		Width(max(width-2, 1)).
		Height(max(height-2, 1))
}
