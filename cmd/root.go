// Package cmd implements the CLI command structure for taskmatrix.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmatrix/internal/board"
	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/logging"
	"github.com/nibzard/taskmatrix/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskmatrix CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskmatrix", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	logger := cliLogger(cws, os.Stderr)

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, logger, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, logger, remainingArgs)
	case "toggle":
		return toggleCommand(ctx, cfg, logger, remainingArgs)
	case "mark":
		return markCommand(ctx, cfg, logger, remainingArgs)
	case "assign", "plan":
		return assignCommand(ctx, cfg, logger, remainingArgs)
	case "unassign", "unplan":
		return unassignCommand(ctx, cfg, logger, remainingArgs)
	case "move":
		return moveCommand(ctx, cfg, logger, remainingArgs)
	case "rename":
		return renameCommand(ctx, cfg, logger, remainingArgs)
	case "rm", "delete":
		return rmCommand(ctx, cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "init":
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		return initCommand(cfg, wd, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cliLogger returns the stderr logger used by one-shot subcommands. Unless
// a log level was configured explicitly, only warnings and errors are shown
// so command output stays readable.
func cliLogger(cws *config.ConfigWithSources, w io.Writer) *log.Logger {
	cfg := cws.Config
	opts := logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, false, cfg.LogCaller)
	if cws.Sources["log_level"] == config.SourceDefault && opts.Level < log.WarnLevel {
		opts.Level = log.WarnLevel
	}
	return logging.New(w, opts)
}

// openStore loads the task file. In strict mode, or when a custom schema is
// configured, the file must pass schema validation first.
func openStore(cfg *config.Config, logger *log.Logger) (*todo.Store, error) {
	if cfg.StrictSchema || cfg.SchemaFile != "" {
		result := todo.ValidateFile(cfg.DataFile, todo.ValidationOptions{Schema: true, SchemaPath: cfg.SchemaFile})
		for _, w := range result.Warnings {
			logger.Warn(w, "path", cfg.DataFile)
		}
		if !result.Valid {
			if cfg.StrictSchema {
				return nil, fmt.Errorf("task file %s failed validation: %w", cfg.DataFile, errors.Join(result.Errors...))
			}
			for _, e := range result.Errors {
				logger.Warn("task file does not match schema", "err", e)
			}
		}
	}
	store, err := todo.Open(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("loading task file: %w", err)
	}
	return store, nil
}

// openBoard opens the store behind a board without clones, so one-shot
// commands go through the same marker rules as the terminal board.
func openBoard(cfg *config.Config, logger *log.Logger) (*board.Board[string], error) {
	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	return board.New[string](store, board.WithLogger[string](logger)), nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskmatrix version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskmatrix - An Eisenhower matrix task board with a weekly planner")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskmatrix [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                        Open the board (default command)")
	fmt.Fprintln(w, "  add <quadrant> <text...>   Add a task (quadrant: 1-4, do, schedule, delegate, eliminate)")
	fmt.Fprintln(w, "  ls                         List tasks by quadrant")
	fmt.Fprintln(w, "  toggle <id> <n>            Toggle marker n (1-3) of a task")
	fmt.Fprintln(w, "  mark <id>                  Add a marker to a task")
	fmt.Fprintln(w, "  assign <id> <day>          Plan a task on a weekday")
	fmt.Fprintln(w, "  unassign <id>              Clear the weekday of a task")
	fmt.Fprintln(w, "  move <id> <quadrant>       Move a task to another quadrant")
	fmt.Fprintln(w, "  rename <id> <text...>      Replace the text of a task")
	fmt.Fprintln(w, "  rm <id>                    Delete a task")
	fmt.Fprintln(w, "  doctor                     Check config and task file validity")
	fmt.Fprintln(w, "  config [-example]          Show effective configuration")
	fmt.Fprintln(w, "  init [-force]              Write a project config and an empty task file")
	fmt.Fprintln(w, "  tail                       Show the latest board log")
	fmt.Fprintln(w, "  completion <shell>         Print a shell completion script")
	fmt.Fprintln(w, "  version                    Show version information")
	fmt.Fprintln(w, "  help                       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task ids may be abbreviated to any unique prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -day string")
	fmt.Fprintln(w, "        Only tasks planned on this day (or \"none\" for unplanned)")
	fmt.Fprintln(w, "  -category string")
	fmt.Fprintln(w, "        Only tasks in this quadrant")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the matching records as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List run logs instead of showing one")
}
