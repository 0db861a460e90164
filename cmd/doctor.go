package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/logging"
	"github.com/nibzard/taskmatrix/internal/todo"
)

// doctorCommand checks the configuration, the task file, and the log dir.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("doctor takes no arguments")
	}
	cfg := cws.Config
	problems := 0

	fmt.Println("Configuration")
	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("  config file:   %s\n", file)
	} else {
		fmt.Println("  config file:   (none, using defaults)")
	}
	fmt.Printf("  data file:     %s (%s)\n", cfg.DataFile, cws.Sources["data_file"])
	schema := cfg.SchemaFile
	if schema == "" {
		schema = "built-in"
	}
	fmt.Printf("  schema:        %s (%s)\n", schema, cws.Sources["schema_file"])
	fmt.Printf("  strict schema: %t\n", cfg.StrictSchema)
	fmt.Printf("  log dir:       %s (%s)\n", cfg.LogDir, cws.Sources["log_dir"])
	fmt.Println()

	fmt.Println("Task file")
	result := todo.ValidateFile(cfg.DataFile, todo.ValidationOptions{Schema: true, SchemaPath: cfg.SchemaFile})
	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Printf("  error: %v\n", e)
		problems++
	}
	if result.Valid {
		if tasks, err := todo.Load(cfg.DataFile); err == nil {
			planned := 0
			for _, t := range tasks {
				if t.DayAssignment != "" {
					planned++
				}
			}
			fmt.Printf("  ok: %d tasks, %d planned\n", len(tasks), planned)
		}
	}
	fmt.Println()

	fmt.Println("Logs")
	runs, err := logging.FindLogRuns(cfg.LogDir)
	switch {
	case err != nil:
		fmt.Printf("  error: %v\n", err)
		problems++
	case len(runs) == 0:
		fmt.Println("  no run logs yet")
	default:
		fmt.Printf("  %d run logs, latest %s\n", len(runs), runs[0].Path)
	}
	if info, err := os.Stat(cfg.LogDir); err == nil && !info.IsDir() {
		fmt.Printf("  error: %s is not a directory\n", cfg.LogDir)
		problems++
	}

	if problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", problems)
	}
	return nil
}

// configCommand prints the effective configuration with the source of each
// value, or an example config file with -example.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	cfg := cws.Config
	values := []struct {
		key   string
		value any
	}{
		{"data_file", cfg.DataFile},
		{"schema_file", cfg.SchemaFile},
		{"log_dir", cfg.LogDir},
		{"strict_schema", cfg.StrictSchema},
		{"watch", cfg.Watch},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}
	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("# config file: %s\n", file)
	}
	for _, v := range values {
		value := fmt.Sprint(v.value)
		if s, ok := v.value.(string); ok {
			value = fmt.Sprintf("%q", s)
		}
		fmt.Printf("%-15s = %-40s # %s\n", v.key, value, cws.Sources[v.key])
	}
	return nil
}
