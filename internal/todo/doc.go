// Package todo loads, validates, and updates the task file.
//
// The task file is a flat JSON array. Each element is one logical task:
//
//	[
//	  {
//	    "ID": "5f0c2a9e-8d7b-4f57-9b44-0d5c3c1f7a10",
//	    "Text": "Write report",
//	    "OriginalCategory": "MostImportantUrgent",
//	    "DayAssignment": "Tuesday",
//	    "MarkerStates": [true, false]
//	  }
//	]
//
// There is no version field. Fields missing from a record decode to their
// zero value, so new fields must come with a usable default.
//
// # Categories
//
//   - "MostImportantUrgent"
//   - "ImportantNotUrgent"
//   - "UrgentNotImportant"
//   - "NotImportantNotUrgent"
//
// An empty category is allowed and places the task in the pool only.
//
// # Days
//
// "Monday" through "Sunday", or empty for an unplanned task.
//
// # Markers
//
// MarkerStates holds between zero and three progress markers. A task whose
// markers are all ticked is rendered struck through.
//
// # File Format
//
// When writing the task file, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - A temp file in the target directory renamed over the original
package todo
