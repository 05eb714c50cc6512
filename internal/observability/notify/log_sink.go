package notify

import (
	"context"
	"log/slog"
	"sort"
)

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink; a nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "notify")}
}

func (s *LogSink) Send(ctx context.Context, ev Event) error {
	attrs := []any{
		"kind", string(ev.Kind),
		"severity", ev.Severity,
		"subject_id", ev.SubjectID,
		"actor_id", ev.ActorID,
		"occurred_at", ev.OccurredAt,
	}
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, ev.Fields[k])
	}

	level := slog.LevelInfo
	if severityRank(ev.Severity) > 0 {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, ev.Summary, attrs...)
	return nil
}
