package cmd

import (
	"context"
	"fmt"

	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/hooks"
	"github.com/nibzard/taskmatrix/internal/logging"
	"github.com/nibzard/taskmatrix/internal/ui"
)

// keepRuns is how many board run logs are kept in the log dir.
const keepRuns = 20

// tuiCommand opens the interactive board. Logs go to a per-run file since
// the terminal belongs to the board.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("tui takes no arguments")
	}

	runLog, err := logging.NewRunLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer runLog.Close()
	logger := runLog.Logger(logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller))
	if pruned, err := logging.PruneRuns(cfg.LogDir, keepRuns); err != nil {
		logger.Warn("pruning run logs failed", "err", err)
	} else if pruned > 0 {
		logger.Debug("pruned run logs", "count", pruned)
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("opening task file failed", "err", err)
		return err
	}
	logger.Info("board opened", "path", store.Path(), "tasks", store.Len(), "watch", cfg.Watch)

	err = ui.Run(ctx, store, ui.WithLogger(logger), ui.WithWatch(cfg.Watch))
	if err != nil {
		logger.Error("board exited with error", "err", err)
		return err
	}
	logger.Info("board closed")

	if cfg.OnChange != "" {
		result, err := hooks.Invoke(ctx, hooks.Options{
			Command:  cfg.OnChange,
			Event:    "tui",
			DataFile: cfg.DataFile,
			Stdout:   runLog.Writer(),
			Stderr:   runLog.Writer(),
		})
		if err != nil {
			logger.Warn("change hook failed", "command", cfg.OnChange, "exit", result.ExitCode, "err", err)
		}
	}
	return nil
}
