package logging

import (
	"context"
	"log/slog"
	"path"
	"slices"

	"github.com/sirupsen/logrus"
)

// LogrusHandler adapts a logrus.Logger to the log/slog interface.
type LogrusHandler struct {
	logger    *logrus.Logger
	withAttrs []slog.Attr
	withGroup string
}

func NewLogrusHandler(logger *logrus.Logger) *LogrusHandler {
	return &LogrusHandler{logger: logger}
}

func (l *LogrusHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= logrusToSlogLevel(l.logger.GetLevel())
}

func (l *LogrusHandler) Handle(_ context.Context, r slog.Record) error {
	entry := logrus.NewEntry(l.logger)
	if !r.Time.IsZero() {
		entry = entry.WithTime(r.Time)
	}

	fields := make(logrus.Fields, len(l.withAttrs)+r.NumAttrs())
	for _, attr := range l.withAttrs {
		addField(fields, "", attr)
	}

	for attr := range r.Attrs {
		addField(fields, l.withGroup, attr)
	}

	entry.WithFields(fields).Log(slogToLogrusLevel(r.Level), r.Message)

	return nil
}

func (l *LogrusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	withAttrs := slices.Clone(l.withAttrs)
	for _, attr := range attrs {
		withAttrs = append(withAttrs, slog.Attr{Key: qualify(l.withGroup, attr.Key), Value: attr.Value})
	}

	return &LogrusHandler{
		logger:    l.logger,
		withAttrs: withAttrs,
		withGroup: l.withGroup,
	}
}

func (l *LogrusHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return l
	}

	return &LogrusHandler{
		logger:    l.logger,
		withAttrs: l.withAttrs,
		withGroup: path.Join(l.withGroup, name),
	}
}

// addField flattens group attributes into dotted field names.
func addField(fields logrus.Fields, group string, attr slog.Attr) {
	if attr.Key == "" && attr.Value.Kind() != slog.KindGroup {
		return
	}

	v := attr.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, sub := range v.Group() {
			addField(fields, qualify(group, attr.Key), sub)
		}

		return
	}

	fields[qualify(group, attr.Key)] = v.Any()
}

func qualify(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	default:
		return group + "." + key
	}
}

func slogToLogrusLevel(level slog.Level) logrus.Level {
	switch {
	case level >= slog.LevelError:
		return logrus.ErrorLevel
	case level >= slog.LevelWarn:
		return logrus.WarnLevel
	case level >= slog.LevelInfo:
		return logrus.InfoLevel
	case level >= slog.LevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

func logrusToSlogLevel(level logrus.Level) slog.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return slog.LevelError
	case logrus.WarnLevel:
		return slog.LevelWarn
	case logrus.DebugLevel:
		return slog.LevelDebug
	case logrus.TraceLevel:
		return slog.LevelDebug - 4
	default:
		return slog.LevelInfo
	}
}
