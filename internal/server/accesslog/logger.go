package accesslog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"gopkg.in/natefinch/lumberjack.v2"
)

// AccessLogger appends one JSON line per store access to a rotated file
type AccessLogger struct {
	mu     sync.Mutex
	file   *lumberjack.Logger
	logger *slog.Logger
}

func New(logDir string, logger *slog.Logger) (*AccessLogger, error) {
	if err := os.MkdirAll(logDir, LogDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &AccessLogger{
		file: &lumberjack.Logger{
			Filename:   filepath.Join(logDir, LogFileName),
			MaxSize:    MaxLogSizeMB,
			MaxBackups: MaxLogFiles,
			Compress:   true,
		},
		logger: logger.With("component", "access_logger"),
	}, nil
}

// Path is the file currently written to
func (al *AccessLogger) Path() string {
	return al.file.Filename
}

// LogAccess records a finished request against path.
// A request counts as allowed when it did not end in an error status.
func (al *AccessLogger) LogAccess(ctx *gin.Context, path string, accessType AccessType) {
	status := ctx.Writer.Status()
	entry := AccessLogEntry{
		Timestamp:  time.Now().UTC(),
		Path:       path,
		AccessType: accessType,
		IP:         ctx.ClientIP(),
		UserAgent:  ctx.Request.UserAgent(),
		Method:     ctx.Request.Method,
		Route:      ctx.FullPath(),
		StatusCode: status,
		Allowed:    status < 400,
	}
	if last := ctx.Errors.Last(); last != nil {
		entry.Error = last.Error()
	}

	if err := al.write(entry); err != nil {
		al.logger.Error("failed to write access log", "error", err, "path", path)
	}
}

func (al *AccessLogger) write(entry AccessLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	data = append(data, '\n')

	al.mu.Lock()
	defer al.mu.Unlock()
	_, err = al.file.Write(data)
	return err
}

func (al *AccessLogger) Close() error {
	al.mu.Lock()
	defer al.mu.Unlock()
	return al.file.Close()
}
