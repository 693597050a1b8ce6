// v0
// internal/logging/logging.go
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// New builds the process logger. With STATION_LOGFILE set the stream is
// duplicated to the file in logfmt; otherwise a tint handler keeps
// interactive output readable.
func New() (*slog.Logger, error) {
	logPath := os.Getenv("STATION_LOGFILE")
	if logPath == "" {
		return slog.New(tint.NewHandler(os.Stdout, nil)), nil
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	handler := slog.NewTextHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := slog.New(handler)
	l.Info("logger initialized", "file", logPath)
	return l, nil
}
