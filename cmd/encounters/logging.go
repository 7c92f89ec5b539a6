package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Log level mapping
var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// initLogging opens the JSON log file in the XDG cache directory and tags
// every record of this invocation with a run id
func (cli *CLI) initLogging(cmd *cobra.Command) error {
	level, ok := logLevelMap[strings.ToLower(cli.viperInst.GetString("log-level"))]
	if !ok {
		level = slog.LevelWarn // Default to WARN
	}

	logDir := getXDGCacheDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "encounters.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	cli.closeLog()
	cli.logCloser = logFile
	cli.logger = slog.New(handler).With(
		"run_id", uuid.NewString(),
		"command", cmd.Name(),
	)

	cli.logger.Debug("logging initialized",
		"level", level.String(),
		"log_file", logPath,
		"data_file", cli.viperInst.GetString("file"))

	return nil
}

// getXDGCacheDir returns the XDG cache directory for encounters
func getXDGCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "encounters")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Last resort - use temp directory
		return filepath.Join(os.TempDir(), "encounters")
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Caches", "encounters")
	}

	return filepath.Join(homeDir, ".cache", "encounters")
}

// logOperation records the outcome of a store operation
func (cli *CLI) logOperation(operation string, args ...any) {
	cli.logger.Info("operation", append([]any{"operation", operation}, args...)...)
}
