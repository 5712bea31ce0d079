// Package errutil holds helpers shared by every package that returns oops errors.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs err at error level. Oops errors contribute their code and
// context as attributes.
func LogError(logger *slog.Logger, msg string, err error) {
	log(logger, slog.LevelError, msg, err)
}

// LogWarn is LogError at warn level, for failures the game survives.
func LogWarn(logger *slog.Logger, msg string, err error) {
	log(logger, slog.LevelWarn, msg, err)
}

func log(logger *slog.Logger, level slog.Level, msg string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"error", err.Error()}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := Code(err); code != "" {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
	}
	logger.Log(context.Background(), level, msg, attrs...)
}

// Code returns the oops code of err, or "" for plain errors.
func Code(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, ok := any(oopsErr.Code()).(string); ok {
			return code
		}
	}
	return ""
}
