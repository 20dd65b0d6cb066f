package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cema-health/program-manager/internal/config"
)

// New builds the process logger. Output goes to stdout and, when enabled, to a
// rotated file.
func New(cfg *config.Config) *slog.Logger {
	writers := []io.Writer{os.Stdout}

	if cfg.Logging.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Logging.File.Path,
			MaxSize:    cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAge:     cfg.Logging.File.MaxAgeDays,
			Compress:   cfg.Logging.File.Compress,
		})
	}

	return slog.New(newHandler(io.MultiWriter(writers...), cfg)).With(
		slog.String("service", cfg.Metrics.ServiceName),
		slog.String("env", cfg.Server.Environment),
	)
}

func newHandler(w io.Writer, cfg *config.Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Logging.Level),
		AddSource: !cfg.IsProduction(),
	}
	if strings.EqualFold(cfg.Logging.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard is used by tests and by code paths that run before configuration.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
