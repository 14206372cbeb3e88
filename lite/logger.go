package lite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/fatih/color"
)

// friendlyHandler prints short colored lines for humans. Level filtering
// is left to the wrapped handler.
type friendlyHandler struct {
	slog.Handler
	w     io.Writer
	attrs []slog.Attr
}

var (
	levelTrace = color.New(color.FgYellow).Sprint("TRACE")
	levelDebug = color.New(color.FgYellow).Sprint("DEBUG")
	levelInfo  = color.New(color.FgGreen).Sprintf("%5s", "INFO")
	levelWarn  = color.New(color.FgMagenta).Sprintf("%5s", "WARN")
	levelError = color.New(color.FgRed).Sprint("ERROR")
)

func coloredLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return levelTrace
	case level < slog.LevelInfo:
		return levelDebug
	case level < slog.LevelWarn:
		return levelInfo
	case level < slog.LevelError:
		return levelWarn
	default:
		return levelError
	}
}

func (l *friendlyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &friendlyHandler{
		Handler: l.Handler.WithAttrs(attrs),
		w:       l.w,
		attrs:   append(l.attrs[:len(l.attrs):len(l.attrs)], attrs...),
	}
}

func (l *friendlyHandler) Handle(ctx context.Context, rec slog.Record) error {
	var sb strings.Builder
	sb.WriteString(color.MagentaString("%02d:%02d", rec.Time.Hour(), rec.Time.Minute()))
	sb.WriteString(" ")
	sb.WriteString(coloredLevel(rec.Level))
	sb.WriteString(" ")
	sb.WriteString(rec.Message)
	attr := func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " %s%s%s",
			color.CyanString(a.Key),
			color.CyanString("="),
			color.YellowString(a.Value.String()))
		return true
	}
	for _, a := range l.attrs {
		attr(a)
	}
	rec.Attrs(attr)
	sb.WriteString("\n")
	_, err := io.WriteString(l.w, sb.String())
	return err
}

// LogContext returns a context whose logger adds key=value to every line.
func LogContext(ctx context.Context, key, value string) context.Context {
	switch x := logger.Get(ctx).(type) {
	case *slogAdapter:
		return logger.NewContext(ctx, &slogAdapter{x.With(slog.String(key, value))})
	default:
		return ctx
	}
}

// Adapt makes an slog.Logger usable with the Databricks SDK.
func Adapt(l *slog.Logger) logger.Logger {
	return &slogAdapter{l}
}

type slogAdapter struct {
	*slog.Logger
}

func (s *slogAdapter) Enabled(ctx context.Context, level logger.Level) bool {
	switch level {
	case logger.LevelTrace, logger.LevelDebug:
		return s.Logger.Enabled(ctx, slog.LevelDebug)
	case logger.LevelInfo:
		return s.Logger.Enabled(ctx, slog.LevelInfo)
	case logger.LevelWarn:
		return s.Logger.Enabled(ctx, slog.LevelWarn)
	case logger.LevelError:
		return s.Logger.Enabled(ctx, slog.LevelError)
	default:
		return true
	}
}

func (s *slogAdapter) Tracef(ctx context.Context, format string, v ...any) {
	s.DebugContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Debugf(ctx context.Context, format string, v ...any) {
	s.DebugContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Infof(ctx context.Context, format string, v ...any) {
	s.InfoContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Warnf(ctx context.Context, format string, v ...any) {
	s.WarnContext(ctx, fmt.Sprintf(format, v...))
}

func (s *slogAdapter) Errorf(ctx context.Context, format string, v ...any) {
	s.ErrorContext(ctx, fmt.Sprintf(format, v...))
}
