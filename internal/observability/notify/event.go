package notify

import (
	"context"
	"strings"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Kind identifies what happened.
type Kind string

const (
	KindApplicationSubmitted     Kind = "application_submitted"
	KindApplicationStatusChanged Kind = "application_status_changed"
	KindExperienceAttested       Kind = "experience_attested"
	KindOrphanedBlob             Kind = "orphaned_blob"
)

// Event is the canonical notification payload.
type Event struct {
	Kind       Kind
	Severity   string
	Summary    string
	SubjectID  string // application id, candidate id or blob key depending on Kind
	ActorID    string
	Fields     map[string]string
	OccurredAt time.Time
}

// Sink describes a destination capable of consuming notifications.
type Sink interface {
	Send(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, ev Event) error

// Send implements the Sink interface.
func (f SinkFunc) Send(ctx context.Context, ev Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, ev)
}

func severityRank(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// WithMinSeverity wraps s so that events below min are dropped.
func WithMinSeverity(s Sink, minSeverity string) Sink {
	threshold := severityRank(minSeverity)
	return SinkFunc(func(ctx context.Context, ev Event) error {
		if severityRank(ev.Severity) < threshold {
			return nil
		}
		return s.Send(ctx, ev)
	})
}
