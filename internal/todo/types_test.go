package todo

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tasks.json")

	original := []Task{
		{
			ID:               "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Text:             "Write report",
			OriginalCategory: CategoryMostImportantUrgent,
			MarkerStates:     []bool{true, false},
		},
		{
			ID:               "a8098c1a-f86e-11da-bd1a-00112444be1e",
			Text:             "Plan trip",
			OriginalCategory: CategoryImportantNotUrgent,
			DayAssignment:    Friday,
			MarkerStates:     []bool{true, true, true},
		},
		{
			ID:           "16fd2706-8baf-433b-82eb-8c7fada847da",
			Text:         "Orphan",
			MarkerStates: []bool{},
		},
	}

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", loaded, original)
	}
}

func TestLoadMissingFile(t *testing.T) {
	tasks, err := Load(filepath.Join(t.TempDir(), "nope", "tasks.json"))
	if err != nil {
		t.Fatalf("Load of missing file should succeed, got %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("Load of missing file: got %#v, want empty slice", tasks)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json"},
		{"object instead of array", `{"ID": "x"}`},
		{"truncated", `[{"ID": "x", "Text": "a"`},
		{"too many markers", `[{"ID": "x", "MarkerStates": [true, true, true, false]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load should fail")
			}
			var perr *PersistenceError
			if !errors.As(err, &perr) {
				t.Fatalf("error should be *PersistenceError, got %T: %v", err, err)
			}
			if perr.Op != "load" {
				t.Errorf("Op: got %q, want load", perr.Op)
			}
			if perr.Path != path {
				t.Errorf("Path: got %q, want %q", perr.Path, path)
			}
		})
	}
}

func TestLoadKeepsUnrecognisedRecords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Task
	}{
		{
			name:    "missing id",
			content: `[{"Text": "x"}]`,
			want:    Task{Text: "x", MarkerStates: []bool{}},
		},
		{
			name:    "unknown category",
			content: `[{"ID": "a", "OriginalCategory": "Work"}]`,
			want:    Task{ID: "a", OriginalCategory: "Work", MarkerStates: []bool{}},
		},
		{
			name:    "lower case day",
			content: `[{"ID": "b", "DayAssignment": "monday", "MarkerStates": [true]}]`,
			want:    Task{ID: "b", DayAssignment: "monday", MarkerStates: []bool{true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			tasks, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(tasks) != 1 {
				t.Fatalf("Tasks count: got %d, want 1", len(tasks))
			}
			if !reflect.DeepEqual(tasks[0], tt.want) {
				t.Errorf("Task: got %+v, want %+v", tasks[0], tt.want)
			}

			result := Validate(tasks, ValidationOptions{})
			if result.Valid {
				t.Error("Validate should still report the record")
			}
		})
	}
}

func TestLoadMissingFieldsDefaultToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(`[{"ID": "abc"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Tasks count: got %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Text != "" || got.OriginalCategory != "" || got.DayAssignment != "" {
		t.Errorf("string fields should be empty, got %+v", got)
	}
	if got.MarkerStates == nil || len(got.MarkerStates) != 0 {
		t.Errorf("MarkerStates: got %#v, want empty slice", got.MarkerStates)
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "tasks.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty list should encode as [], got %q", data)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	for i := 0; i < 3; i++ {
		if err := Save(path, []Task{{ID: "x", MarkerStates: []bool{false}}}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory should only hold tasks.json, got %v", names)
	}
}

func TestSaveFailureIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file, not dir"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Save(filepath.Join(blocker, "tasks.json"), []Task{{ID: "x"}})
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("error should be *PersistenceError, got %T: %v", err, err)
	}
	if perr.Op != "save" {
		t.Errorf("Op: got %q, want save", perr.Op)
	}
}

func TestFileOutputFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	tasks := []Task{{ID: "x", Text: "Test task", OriginalCategory: CategoryUrgentNotImportant}}

	if err := Save(path, tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(data)

	if !strings.HasSuffix(content, "\n") {
		t.Error("Expected trailing newline")
	}
	if !strings.Contains(content, "\n  {\n    \"ID\": \"x\"") {
		t.Errorf("Expected 2-space indentation, got:\n%s", content)
	}
	for _, field := range []string{`"ID"`, `"Text"`, `"OriginalCategory"`, `"DayAssignment"`, `"MarkerStates": []`} {
		if !strings.Contains(content, field) {
			t.Errorf("Expected %s in output:\n%s", field, content)
		}
	}
	if strings.Contains(content, "null") {
		t.Errorf("MarkerStates should never encode as null:\n%s", content)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"MostImportantUrgent", CategoryMostImportantUrgent, false},
		{"importantnoturgent", CategoryImportantNotUrgent, false},
		{"3", CategoryUrgentNotImportant, false},
		{"eliminate", CategoryNotImportantNotUrgent, false},
		{" do ", CategoryMostImportantUrgent, false},
		{"", "", true},
		{"whenever", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    Day
		wantErr bool
	}{
		{"Tuesday", Tuesday, false},
		{"tue", Tuesday, false},
		{"SUNDAY", Sunday, false},
		{"1", Monday, false},
		{"7", Sunday, false},
		{"", "", false},
		{"8", "", true},
		{"someday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDay(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAllTicked(t *testing.T) {
	tests := []struct {
		name    string
		markers []bool
		want    bool
	}{
		{"nil", nil, false},
		{"empty", []bool{}, false},
		{"one unticked", []bool{false}, false},
		{"one ticked", []bool{true}, true},
		{"mixed", []bool{true, false, true}, false},
		{"all ticked", []bool{true, true, true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllTicked(tt.markers); got != tt.want {
				t.Errorf("AllTicked(%v) = %v, want %v", tt.markers, got, tt.want)
			}
		})
	}
}

func TestTaskIsZero(t *testing.T) {
	task := Task{}
	if !task.IsZero() {
		t.Error("Empty task should be zero")
	}

	task.ID = NewID()
	if task.IsZero() {
		t.Error("Task with ID should not be zero")
	}
}

func TestTaskMethodsOnMapValues(t *testing.T) {
	byID := map[string]Task{
		"done": {ID: "done", MarkerStates: []bool{true, true}},
		"open": {ID: "open", MarkerStates: []bool{true, false}},
		"":     {Text: "no id"},
	}
	if !byID["done"].AllTicked() {
		t.Error("done should be all ticked")
	}
	if byID["open"].AllTicked() {
		t.Error("open should not be all ticked")
	}
	if !byID[""].IsZero() || byID["done"].IsZero() {
		t.Error("IsZero should follow the ID")
	}
	if c := byID["done"].Clone(); !c.AllTicked() {
		t.Error("clone should keep the markers")
	}
}

func TestTaskCloneIsDeep(t *testing.T) {
	task := Task{ID: "x", MarkerStates: []bool{false}}
	c := task.Clone()
	c.MarkerStates[0] = true
	if task.MarkerStates[0] {
		t.Error("Clone should not share marker storage")
	}
}
