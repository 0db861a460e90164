package todo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateMinimal(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []Task
		wantErr bool
	}{
		{
			name:  "valid list",
			tasks: []Task{{ID: "a", Text: "x", OriginalCategory: CategoryMostImportantUrgent, DayAssignment: Monday, MarkerStates: []bool{true}}},
		},
		{
			name:  "empty category and day",
			tasks: []Task{{ID: "a", MarkerStates: []bool{}}},
		},
		{
			name:    "missing id",
			tasks:   []Task{{Text: "x"}},
			wantErr: true,
		},
		{
			name:    "bad category",
			tasks:   []Task{{ID: "a", OriginalCategory: "Someday"}},
			wantErr: true,
		},
		{
			name:    "bad day",
			tasks:   []Task{{ID: "a", DayAssignment: "Caturday"}},
			wantErr: true,
		},
		{
			name:    "too many markers",
			tasks:   []Task{{ID: "a", MarkerStates: []bool{false, false, false, false}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.tasks, ValidationOptions{})
			if result.Valid == tt.wantErr {
				t.Errorf("Validate() valid = %v, want error %v (errors: %v)", result.Valid, tt.wantErr, result.Errors)
			}
			if result.UsedSchema {
				t.Error("UsedSchema should be false without schema options")
			}
		})
	}
}

func TestValidateDuplicateIDsWarn(t *testing.T) {
	result := Validate([]Task{{ID: "a"}, {ID: "a"}}, ValidationOptions{})
	if !result.Valid {
		t.Errorf("duplicates should not invalidate, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "duplicate ID a") {
		t.Errorf("Warnings: got %v, want one duplicate warning", result.Warnings)
	}
}

func TestValidateWithEmbeddedSchema(t *testing.T) {
	valid := []Task{{ID: "a", Text: "x", OriginalCategory: CategoryImportantNotUrgent, MarkerStates: []bool{false}}}
	result := Validate(valid, ValidationOptions{Schema: true})
	if !result.UsedSchema {
		t.Fatalf("UsedSchema should be true, warnings: %v", result.Warnings)
	}
	if !result.Valid {
		t.Errorf("valid list rejected: %v", result.Errors)
	}

	invalid := []Task{{ID: "a", MarkerStates: []bool{true, true, true, true}}}
	result = Validate(invalid, ValidationOptions{Schema: true})
	if result.Valid {
		t.Error("four markers should fail schema validation")
	}
	found := false
	for _, err := range result.Errors {
		if strings.HasPrefix(err.Error(), "[0].MarkerStates") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error at [0].MarkerStates, got %v", result.Errors)
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		result := ValidateFile(filepath.Join(dir, "missing.json"), ValidationOptions{Schema: true})
		if !result.Valid {
			t.Errorf("missing file should be valid, errors: %v", result.Errors)
		}
		if len(result.Warnings) == 0 {
			t.Error("expected a warning for a missing file")
		}
	})

	t.Run("schema catches unknown category", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		content := `[{"ID": "a", "OriginalCategory": "Someday", "MarkerStates": []}]`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		result := ValidateFile(path, ValidationOptions{Schema: true})
		if result.Valid {
			t.Error("unknown category should be invalid")
		}
		if !result.UsedSchema {
			t.Error("UsedSchema should be true")
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
			t.Fatal(err)
		}
		result := ValidateFile(path, ValidationOptions{})
		if result.Valid {
			t.Error("garbage should be invalid")
		}
	})

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "good.json")
		if err := Save(path, []Task{{ID: "a", Text: "x", DayAssignment: Sunday}}); err != nil {
			t.Fatal(err)
		}
		result := ValidateFile(path, ValidationOptions{Schema: true})
		if !result.Valid {
			t.Errorf("valid file rejected: %v", result.Errors)
		}
	})
}

func TestValidateWithMissingSchemaFile(t *testing.T) {
	result := Validate([]Task{{ID: "a"}}, ValidationOptions{SchemaPath: "/non/existent/schema.json"})
	if !result.Valid {
		t.Errorf("Valid should be true, got false: %v", result.Errors)
	}
	if result.UsedSchema {
		t.Error("UsedSchema should be false when the schema file is missing")
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected warnings when schema file not found")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0", "[0]"},
		{"/2/MarkerStates", "[2].MarkerStates"},
		{"/2/MarkerStates/3", "[2].MarkerStates[3]"},
		{"#/1/a~1b", "[1].a/b"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.in); got != tt.want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
