package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/taskmatrix/internal/appdir"
	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/todo"
)

// initCommand writes a project config file into dir and creates an empty
// task file at the configured data path. Existing files are kept unless
// -force is given.
func initCommand(cfg *config.Config, dir string, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite existing files")
	skipConfig := fs.Bool("skip-config", false, "Do not write a config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*skipConfig {
		configPath := filepath.Join(dir, appdir.ConfigFile)
		if err := writeIfMissing(configPath, []byte(config.ExampleConfig()), *force); err != nil {
			return err
		}
	}

	if _, err := os.Stat(cfg.DataFile); err == nil && !*force {
		fmt.Printf("Skipped %s (exists)\n", cfg.DataFile)
		return nil
	}
	if err := todo.Save(cfg.DataFile, []todo.Task{}); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", cfg.DataFile)
	return nil
}

func writeIfMissing(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Printf("Skipped %s (exists)\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
