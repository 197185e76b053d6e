package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"

	"github.com/thushan/holocron/theme"
)

// StyledLogger wraps slog.Logger with Theme-aware formatting
type StyledLogger struct {
	logger *slog.Logger
	Theme  *theme.Theme
}

func NewStyledLogger(logger *slog.Logger, theme *theme.Theme) *StyledLogger {
	return &StyledLogger{
		logger: logger,
		Theme:  theme,
	}
}

func (sl *StyledLogger) Debug(msg string, args ...any) {
	sl.logger.Debug(msg, args...)
}

func (sl *StyledLogger) Info(msg string, args ...any) {
	sl.logger.Info(msg, args...)
}

func (sl *StyledLogger) Warn(msg string, args ...any) {
	sl.logger.Warn(msg, args...)
}

func (sl *StyledLogger) Error(msg string, args ...any) {
	sl.logger.Error(msg, args...)
}

func (sl *StyledLogger) InfoWithCount(msg string, count int, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, pterm.Style{sl.Theme.Counts}.Sprint("(", count, ")"))
	sl.logger.Info(styledMsg, args...)
}

func (sl *StyledLogger) InfoWithURL(msg string, url string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, pterm.Style{sl.Theme.Source}.Sprint(url))
	sl.logger.Info(styledMsg, args...)
}

func (sl *StyledLogger) InfoWithPath(msg string, path string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", msg, pterm.Style{sl.Theme.Path}.Sprint(path))
	sl.logger.Info(styledMsg, args...)
}

func (sl *StyledLogger) InfoFavorite(msg string, name string, args ...any) {
	styledMsg := fmt.Sprintf("%s %s", pterm.Style{sl.Theme.Favorite}.Sprint("★"), msg)
	sl.logger.Info(fmt.Sprintf("%s %s", styledMsg, pterm.Style{sl.Theme.Record}.Sprint(name)), args...)
}

func (sl *StyledLogger) InfoConfigChange(key string, oldValue, newValue any) {
	styledMsg := fmt.Sprintf("Configuration %s changed from %s to %s",
		pterm.Style{sl.Theme.Path}.Sprint(key),
		pterm.Style{sl.Theme.Numbers}.Sprint(oldValue),
		pterm.Style{sl.Theme.Numbers}.Sprint(newValue))
	sl.logger.Info(styledMsg)
}

func (sl *StyledLogger) WithRequestID(requestID string) *StyledLogger {
	return sl.With("request_id", requestID)
}

func (sl *StyledLogger) With(args ...any) *StyledLogger {
	return &StyledLogger{
		logger: sl.logger.With(args...),
		Theme:  sl.Theme,
	}
}

func NewWithTheme(cfg *Config) (*slog.Logger, *StyledLogger, func(), error) {
	logger, cleanup, err := New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	appTheme := theme.GetTheme(cfg.Theme)
	styledLogger := NewStyledLogger(logger, appTheme)

	return logger, styledLogger, cleanup, nil
}

// NewNop returns a StyledLogger that drops everything, for tests and
// callers that were not handed a logger
func NewNop() *StyledLogger {
	return NewStyledLogger(slog.New(slog.DiscardHandler), theme.Default())
}

// LogContext separates the short terminal message args from the detailed
// args that only go to the log file
type LogContext struct {
	UserArgs     []any
	DetailedArgs []any
}

func (sl *StyledLogger) WarnWithContext(msg string, url string, ctx LogContext) {
	sl.logWithContext(slog.LevelWarn, msg, url, ctx)
}

func (sl *StyledLogger) logWithContext(level slog.Level, msg string, url string, ctx LogContext) {
	styledMsg := fmt.Sprintf("%s %s", msg, pterm.Style{sl.Theme.Source}.Sprint(url))
	sl.logger.Log(context.Background(), level, styledMsg, ctx.UserArgs...)

	if len(ctx.DetailedArgs) == 0 {
		return
	}

		allArgs := make([]any, 0, len(ctx.UserArgs)+len(ctx.DetailedArgs)+2)
	allArgs = append(allArgs, "url", url)
	allArgs = append(allArgs, ctx.UserArgs...)
	allArgs = append(allArgs, ctx.DetailedArgs...)

	detailedCtx := WithDetailed(context.Background())
	sl.logger.Log(detailedCtx, level, msg, allArgs...)
}
