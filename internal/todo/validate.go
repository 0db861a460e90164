package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var embeddedSchema []byte

const embeddedSchemaURL = "https://taskmatrix.local/tasks.schema.json"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// Schema enables JSON Schema validation against the built-in schema.
	Schema bool
	// SchemaPath overrides the built-in schema with a file on disk.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Validate checks an in-memory task list.
func Validate(tasks []Task, opts ValidationOptions) *ValidationResult {
	result := newValidationResult()

	if opts.Schema || opts.SchemaPath != "" {
		data, err := json.Marshal(tasks)
		if err != nil {
			result.fail(&ValidationError{Err: fmt.Errorf("failed to marshal tasks for validation: %w", err)})
			return result
		}
		validateWithSchema(result, data, opts)
	}

	validateMinimal(result, tasks)
	return result
}

// ValidateFile checks the raw task file at path. A missing file is valid.
func ValidateFile(path string, opts ValidationOptions) *ValidationResult {
	result := newValidationResult()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("task file not found: %s", path))
			return result
		}
		result.fail(&ValidationError{Err: fmt.Errorf("read task file: %w", err)})
		return result
	}

	if opts.Schema || opts.SchemaPath != "" {
		validateWithSchema(result, data, opts)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("parse task file: %w", err)})
		return result
	}
	validateMinimal(result, tasks)
	return result
}

// validateMinimal performs validation without JSON Schema.
func validateMinimal(result *ValidationResult, tasks []Task) {
	seen := make(map[string]int, len(tasks))
	for i := range tasks {
		path := fmt.Sprintf("[%d]", i)
		if err := validateTaskMinimal(&tasks[i], path); err != nil {
			result.fail(err)
			continue
		}
		if first, dup := seen[tasks[i].ID]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: duplicate ID %s (first seen at [%d])", path, tasks[i].ID, first))
			continue
		}
		seen[tasks[i].ID] = i
	}
}

// validateTaskMinimal checks the per-record invariants.
func validateTaskMinimal(task *Task, path string) *ValidationError {
	if task.ID == "" {
		return &ValidationError{
			Path: path + ".ID",
			Err:  fmt.Errorf("missing required field"),
		}
	}

	if task.OriginalCategory != "" && !task.OriginalCategory.Valid() {
		return &ValidationError{
			Path: path + ".OriginalCategory",
			Err:  fmt.Errorf("invalid category %q, must be one of: %s", task.OriginalCategory, joinCategories()),
		}
	}

	if task.DayAssignment != "" && !task.DayAssignment.Valid() {
		return &ValidationError{
			Path: path + ".DayAssignment",
			Err:  fmt.Errorf("invalid day %q", task.DayAssignment),
		}
	}

	return checkMarkerCount(task, path)
}

// checkMarkerCount enforces the one invariant every loaded record must hold.
func checkMarkerCount(task *Task, path string) *ValidationError {
	if len(task.MarkerStates) > MaxMarkers {
		return &ValidationError{
			Path: path + ".MarkerStates",
			Err:  fmt.Errorf("at most %d markers allowed, got %d", MaxMarkers, len(task.MarkerStates)),
		}
	}
	return nil
}

// validateWithSchema validates raw JSON against the configured schema.
func validateWithSchema(result *ValidationResult, data []byte, opts ValidationOptions) {
	schema, err := compileSchema(opts.SchemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("JSON Schema validation not available: %v", err))
		return
	}
	result.UsedSchema = true

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("failed to unmarshal file for validation: %w", err)})
		return
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if schemaPath == "" {
		if err := compiler.AddResource(embeddedSchemaURL, bytes.NewReader(embeddedSchema)); err != nil {
			return nil, fmt.Errorf("load built-in schema: %w", err)
		}
		return compiler.Compile(embeddedSchemaURL)
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("schema file not found: %s", absPath)
	}
	return compiler.Compile(absPath)
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}
