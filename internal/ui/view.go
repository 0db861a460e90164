package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskmatrix/internal/todo"
)

const (
	markerOn  = "●"
	markerOff = "○"
	markerAdd = "+"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render("taskmatrix") + mutedStyle.Render(m.board.Store().Path())
	footer := m.footerView()
	fixed := lipgloss.Height(header) + lipgloss.Height(footer)

	avail := max(m.height-fixed, 12)
	dayH := max(avail/3, 5)
	gridH := avail - dayH
	rowH := gridH / 2

	poolW := max(m.width/4, 20)
	quadW := max((m.width-poolW)/2, 16)
	quadW2 := max(m.width-poolW-quadW, 16)

	row0 := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panelView(firstQuadrant, quadW, rowH),
		m.panelView(firstQuadrant+1, quadW2, rowH),
	)
	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panelView(firstQuadrant+2, quadW, gridH-rowH),
		m.panelView(firstQuadrant+3, quadW2, gridH-rowH),
	)
	grid := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, row0, row1),
		m.panelView(PanelPool, poolW, gridH),
	)

	dayW := max(m.width/7, 12)
	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		w := dayW
		if i == 6 {
			w = max(m.width-6*dayW, 12)
		}
		days = append(days, m.panelView(firstDay+Panel(i), w, dayH))
	}
	week := lipgloss.JoinHorizontal(lipgloss.Top, days...)

	return lipgloss.JoinVertical(lipgloss.Left, header, grid, week, footer)
}

func (m *Model) footerView() string {
	var b strings.Builder
	switch m.mode {
	case modeAdd:
		title := "New task"
		if c, ok := m.focus.Category(); ok {
			title += " in " + c.Label()
		}
		b.WriteString(promptStyle.Render(title+":") + " " + m.input.View() + "\n")
	case modeRename:
		b.WriteString(promptStyle.Render("Edit task:") + " " + m.input.View() + "\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// panelView renders panel p as a bordered box of the given outer size.
func (m *Model) panelView(p Panel, width, height int) string {
	focused := p == m.focus
	inner := max(width-2-2*panelPadding, 4)
	rows := max(height-3, 1)

	cards := m.panels[p]
	title := fmt.Sprintf("%s (%d)", p.Title(), len(cards))
	titleLine := titleStyle.Foreground(panelColor(p)).Render(truncate(title, inner))

	lines := []string{titleLine}
	if len(cards) == 0 {
		lines = append(lines, mutedStyle.Render(truncate(emptyHint(p), inner)))
	}

	start := 0
	if cur := m.cursor[p]; cur >= rows {
		start = cur - rows + 1
	}
	end := min(start+rows, len(cards))
	for i := start; i < end; i++ {
		lines = append(lines, m.cardLine(cards[i], inner, focused && i == m.cursor[p]))
	}

	return panelStyle(p, width, height, focused).Render(strings.Join(lines, "\n"))
}

func (m *Model) cardLine(c Card, width int, selected bool) string {
	view := m.views[c]
	markers := markerString(view.markers)

	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("› ")
	}
	textW := max(width-2-lipgloss.Width(markers)-1, 1)
	text := truncate(m.refs[c.TaskID].Text, textW)
	if view.allTicked {
		text = doneStyle.Render(text)
	} else if selected {
		text = cursorStyle.Render(text)
	}
	pad := max(textW-lipgloss.Width(text), 0)
	return prefix + text + strings.Repeat(" ", pad) + " " + markers
}

// markerString renders filled and empty dots, plus a "+" while another
// marker can be added.
func markerString(markers []bool) string {
	var b strings.Builder
	for _, on := range markers {
		if on {
			b.WriteString(markerOn)
		} else {
			b.WriteString(markerOff)
		}
	}
	if len(markers) < todo.MaxMarkers {
		b.WriteString(markerAdd)
	}
	return b.String()
}

func emptyHint(p Panel) string {
	switch {
	case p.IsDay():
		return "plan with m"
	case p == PanelPool:
		return "nothing unplanned"
	default:
		return "add with a"
	}
}

// truncate shortens s to at most width cells, ending with "…" when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
