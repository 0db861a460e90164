package ui

import "github.com/nibzard/taskmatrix/internal/todo"

// Panel identifies one area of the board: the four quadrants, the pool, and
// the seven day panels, in that order.
type Panel int

const (
	firstQuadrant Panel = 0
	PanelPool     Panel = 4
	firstDay      Panel = 5
	numPanels           = 12
)

// Card is the clone handle registered with the board for every task shown
// in a panel.
type Card struct {
	Panel  Panel
	TaskID string
}

// QuadrantPanel returns the panel showing category c. Categories outside
// the four quadrants map to the pool.
func QuadrantPanel(c todo.Category) Panel {
	for i, known := range todo.Categories {
		if c == known {
			return firstQuadrant + Panel(i)
		}
	}
	return PanelPool
}

// DayPanel returns the panel for day d, or the pool for an empty day.
func DayPanel(d todo.Day) Panel {
	for i, known := range todo.Days {
		if d == known {
			return firstDay + Panel(i)
		}
	}
	return PanelPool
}

// Category returns the quadrant shown by p.
func (p Panel) Category() (todo.Category, bool) {
	if p >= firstQuadrant && p < PanelPool {
		return todo.Categories[p-firstQuadrant], true
	}
	return "", false
}

// Day returns the weekday shown by p.
func (p Panel) Day() (todo.Day, bool) {
	if p >= firstDay && p < numPanels {
		return todo.Days[p-firstDay], true
	}
	return "", false
}

// IsDay reports whether p is one of the day panels.
func (p Panel) IsDay() bool {
	_, ok := p.Day()
	return ok
}

// Title returns the panel heading.
func (p Panel) Title() string {
	if c, ok := p.Category(); ok {
		return c.Label()
	}
	if d, ok := p.Day(); ok {
		return string(d)
	}
	return "Pool"
}

// Panel grid used for navigation:
//
//	row 0: Q0  Q1  Pool
//	row 1: Q2  Q3  Pool
//	row 2: Mon .. Sun
func (p Panel) left() Panel {
	switch {
	case p == PanelPool:
		return firstQuadrant + 1
	case p == firstQuadrant+1 || p == firstQuadrant+3:
		return p - 1
	case p > firstDay:
		return p - 1
	}
	return p
}

func (p Panel) right() Panel {
	switch {
	case p == firstQuadrant || p == firstQuadrant+2:
		return p + 1
	case p == firstQuadrant+1 || p == firstQuadrant+3:
		return PanelPool
	case p >= firstDay && p < numPanels-1:
		return p + 1
	}
	return p
}

func (p Panel) up() Panel {
	switch {
	case p == firstQuadrant+2 || p == firstQuadrant+3:
		return p - 2
	case p.IsDay():
		switch col := int(p - firstDay); {
		case col <= 2:
			return firstQuadrant + 2
		case col <= 4:
			return firstQuadrant + 3
		default:
			return PanelPool
		}
	}
	return p
}

func (p Panel) down() Panel {
	switch p {
	case firstQuadrant, firstQuadrant + 1:
		return p + 2
	case firstQuadrant + 2:
		return firstDay
	case firstQuadrant + 3:
		return firstDay + 3
	case PanelPool:
		return firstDay + 5
	}
	return p
}
