package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thushan/holocron/internal/util"
	"github.com/thushan/holocron/theme"
)

type Config struct {
	Level      string
	LogDir     string
	Theme      string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	FileOutput bool

	// TerminalOutput is switched off while the TUI owns the screen
	TerminalOutput bool

	// Writer overrides stdout for terminal output, used by tests
	Writer io.Writer
}

const (
	DefaultLogOutputName = "holocron.log"
	timestampLayout      = "2006-01-02 15:04:05"

	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

type detailedKey struct{}

// WithDetailed marks records logged with ctx as file only
func WithDetailed(ctx context.Context) context.Context {
	return context.WithValue(ctx, detailedKey{}, true)
}

func isDetailed(ctx context.Context) bool {
	d, ok := ctx.Value(detailedKey{}).(bool)
	return ok && d
}

// New builds the process logger. Terminal and file output are independent,
// with both off every record is discarded.
func New(cfg *Config) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)

	terminal := slog.DiscardHandler
	if cfg.TerminalOutput {
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		terminal = terminalHandler(w, level, theme.GetTheme(cfg.Theme))
	}

	if !cfg.FileOutput {
		return slog.New(terminal), func() {}, nil
	}

	file, closer, err := fileHandler(cfg, level)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = closer.Close()
	}
	return slog.New(&teeHandler{terminal: terminal, file: file}), cleanup, nil
}

// FatalWithLogger logs through logger and exits
func FatalWithLogger(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}

func terminalHandler(w io.Writer, level slog.Level, appTheme *theme.Theme) slog.Handler {
	if (w == os.Stdout || w == os.Stderr) && util.ShouldUseColors() {
		plogger := pterm.DefaultLogger.
			WithLevel(ptermLevel(level)).
			WithWriter(w).
			WithFormatter(pterm.LogFormatterColorful).
			WithKeyStyles(map[string]pterm.Style{
				"level": *appTheme.Info,
				"msg":   *appTheme.Info,
				"time":  *appTheme.Muted,
			})
		return pterm.NewSlogHandler(plogger)
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})
}

func fileHandler(cfg *Config, level slog.Level) (slog.Handler, io.Closer, error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", cfg.LogDir, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, DefaultLogOutputName),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	})
	return handler, rotator, nil
}

// replaceAttr flattens values for JSON output. Styled messages and urls
// carry ANSI colour codes which have no place in a log file.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String("timestamp", a.Value.Time().Format(timestampLayout))
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if str := a.Value.String(); strings.ContainsRune(str, '\x1b') {
			return slog.String(a.Key, ansi.Strip(str))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, ansi.Strip(err.Error()))
		}
		return slog.String(a.Key, fmt.Sprintf("%v", a.Value.Any()))
	}
	return a
}

// teeHandler writes to the terminal and the log file, records logged with a
// detailed context only reach the file
type teeHandler struct {
	terminal slog.Handler
	file     slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.terminal.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	if !isDetailed(ctx) && h.terminal.Enabled(ctx, record.Level) {
		if err := h.terminal.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	if h.file.Enabled(ctx, record.Level) {
		return h.file.Handle(ctx, record)
	}
	return nil
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{
		terminal: h.terminal.WithAttrs(attrs),
		file:     h.file.WithAttrs(attrs),
	}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{
		terminal: h.terminal.WithGroup(name),
		file:     h.file.WithGroup(name),
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch level {
	case slog.LevelDebug:
		return pterm.LogLevelTrace
	case slog.LevelWarn:
		return pterm.LogLevelWarn
	case slog.LevelError:
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}
