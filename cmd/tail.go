package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/logging"
)

// tailCommand shows the latest board run log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tail", flag.ContinueOnError)
	follow := fs.Bool("follow", false, "Follow the log")
	fs.BoolVar(follow, "f", false, "Follow the log (shorthand)")
	lines := fs.Int("n", 50, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List run logs instead of showing one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		runs, err := logging.FindLogRuns(cfg.LogDir)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No run logs found.")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  %8d  %s\n", r.RunID, r.ModTime.Format("2006-01-02 15:04:05"), r.Size, r.Path)
		}
		return nil
	}

	var path string
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	} else {
		latest, err := logging.FindLatestLog(cfg.LogDir)
		if err != nil {
			return err
		}
		if latest == "" {
			return fmt.Errorf("no run logs in %s", cfg.LogDir)
		}
		path = latest
	}
	return logging.TailLog(ctx, os.Stdout, path, *lines, *follow)
}
