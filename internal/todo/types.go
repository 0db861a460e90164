// Package todo loads, validates, and updates the task file.
package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxMarkers is the largest number of progress markers a task may carry.
const MaxMarkers = 3

// ErrTaskNotFound is returned when an operation names an unknown task id.
var ErrTaskNotFound = errors.New("task not found")

// Category is one of the four Eisenhower quadrants.
type Category string

const (
	CategoryMostImportantUrgent   Category = "MostImportantUrgent"
	CategoryImportantNotUrgent    Category = "ImportantNotUrgent"
	CategoryUrgentNotImportant    Category = "UrgentNotImportant"
	CategoryNotImportantNotUrgent Category = "NotImportantNotUrgent"
)

// Categories lists the quadrants in display order.
var Categories = []Category{
	CategoryMostImportantUrgent,
	CategoryImportantNotUrgent,
	CategoryUrgentNotImportant,
	CategoryNotImportantNotUrgent,
}

// Valid reports whether c is one of the four quadrants.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns a short human readable name.
func (c Category) Label() string {
	switch c {
	case CategoryMostImportantUrgent:
		return "Do first"
	case CategoryImportantNotUrgent:
		return "Schedule"
	case CategoryUrgentNotImportant:
		return "Delegate"
	case CategoryNotImportantNotUrgent:
		return "Eliminate"
	default:
		return "Unfiled"
	}
}

// ParseCategory accepts the stored label (case-insensitive), a quadrant
// number 1-4, or the matrix verbs do/schedule/delegate/eliminate.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "1", "do", "do-first", "urgent-important":
		return CategoryMostImportantUrgent, nil
	case "2", "schedule", "important":
		return CategoryImportantNotUrgent, nil
	case "3", "delegate", "urgent":
		return CategoryUrgentNotImportant, nil
	case "4", "eliminate", "later":
		return CategoryNotImportantNotUrgent, nil
	}
	for _, c := range Categories {
		if strings.ToLower(string(c)) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q, must be one of: %s", s, joinCategories())
}

func joinCategories() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Day is a weekday label used for planning.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the weekdays in display order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven weekday labels.
func (d Day) Valid() bool {
	for _, known := range Days {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDay accepts a full or three-letter weekday name (case-insensitive)
// or a number 1-7 starting at Monday. An empty string yields an empty Day.
func ParseDay(s string) (Day, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", nil
	}
	for i, d := range Days {
		full := strings.ToLower(string(d))
		if key == full || key == full[:3] || key == fmt.Sprintf("%d", i+1) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// Task is one logical task. Identity is the ID; everything else is mutable.
type Task struct {
	ID               string   `json:"ID"`
	Text             string   `json:"Text"`
	OriginalCategory Category `json:"OriginalCategory"`
	DayAssignment    Day      `json:"DayAssignment"`
	MarkerStates     []bool   `json:"MarkerStates"`
}

// IsZero returns true if the task is empty (has no ID).
func (t Task) IsZero() bool {
	return t.ID == ""
}

// AllTicked reports whether the task has at least one marker and every
// marker is ticked.
func (t Task) AllTicked() bool {
	return AllTicked(t.MarkerStates)
}

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	t.MarkerStates = CopyMarkers(t.MarkerStates)
	return t
}

// Ref carries what a presentation layer knows about a task while moving it
// around, which may be ahead of what has been persisted.
type Ref struct {
	ID       string
	Text     string
	Category Category
}

// AllTicked reports whether markers is non-empty and all true.
func AllTicked(markers []bool) bool {
	if len(markers) == 0 {
		return false
	}
	for _, m := range markers {
		if !m {
			return false
		}
	}
	return true
}

// CopyMarkers returns a non-nil copy of markers.
func CopyMarkers(markers []bool) []bool {
	out := make([]bool, len(markers))
	copy(out, markers)
	return out
}

// NewID returns a fresh task identifier.
func NewID() string {
	return uuid.NewString()
}
