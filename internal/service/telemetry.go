package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/workvortex/vortex-api/internal/observability/metrics"
	"github.com/workvortex/vortex-api/internal/observability/notify"
	"github.com/workvortex/vortex-api/internal/observability/statsd"
)

// Notifier receives workflow notifications. Notify must not block on delivery.
type Notifier interface {
	Notify(ctx context.Context, ev notify.Event)
}

// Telemetry bundles the optional observability hooks shared by the core services.
// The zero value logs to slog.Default and drops notifications and metrics.
type Telemetry struct {
	Logger   *slog.Logger
	Notifier Notifier
	Metrics  statsd.Sink
}

func (t Telemetry) logger(component string) *slog.Logger {
	l := t.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}

func (t Telemetry) notify(ctx context.Context, ev notify.Event) {
	if t.Notifier == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	t.Notifier.Notify(ctx, ev)
}

// observe emits <name>.count and <name>.duration for an operation that started at start.
func (t Telemetry) observe(name string, start time.Time, err error, tags map[string]string) {
	if t.Metrics == nil {
		return
	}
	metrics.EmitOperation(t.Metrics, metrics.Operation{
		Name:     name,
		Result:   metrics.ResultFor(err),
		Duration: time.Since(start),
		Err:      err,
		Tags:     tags,
	})
}
