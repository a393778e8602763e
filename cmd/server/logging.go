package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/vauradkar/letso/internal/utils"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName   = "letso-server.log"
	logMaxSizeMB  = 50
	logMaxBackups = 5
	logMaxAgeDays = 30
)

// setupLogger installs the default logger: colored output on stdout and, when
// logDir is set, a rotated text log. The returned func closes the log file.
func setupLogger(logDir string) (func(), error) {
	stdoutHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})

	if logDir == "" {
		slog.SetDefault(slog.New(stdoutHandler))
		return func() {}, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(stdoutHandler, fileHandler)))
	return func() { file.Close() }, nil
}
