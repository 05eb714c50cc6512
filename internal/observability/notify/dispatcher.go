package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	Sinks   []Sink
	Timeout time.Duration // per-sink delivery timeout, default 10s
	Logger  *slog.Logger
	Now     func() time.Time
}

// Dispatcher fans events out to sinks in the background.
// Delivery failures are logged; callers never see them.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewDispatcher builds a Dispatcher. A Dispatcher with no sinks is a no-op.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sinks := make([]Sink, 0, len(opts.Sinks))
	for _, s := range opts.Sinks {
		if s != nil {
			sinks = append(sinks, s)
		}
	}
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		logger:  logger.With("component", "notify_dispatcher"),
		now:     now,
	}
}

// Notify delivers ev to every sink asynchronously. It never blocks on delivery.
func (d *Dispatcher) Notify(ctx context.Context, ev Event) {
	if d == nil || len(d.sinks) == 0 {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = d.now()
	}
	if ev.Severity == "" {
		ev.Severity = SeverityInfo
	}
	base := context.WithoutCancel(ctx)
	for _, s := range d.sinks {
		d.wg.Add(1)
		go func(s Sink) {
			defer d.wg.Done()
			sendCtx, cancel := context.WithTimeout(base, d.timeout)
			defer cancel()
			if err := s.Send(sendCtx, ev); err != nil {
				d.logger.WarnContext(sendCtx, "notification delivery failed",
					"kind", string(ev.Kind),
					"subject_id", ev.SubjectID,
					"error", err,
				)
			}
		}(s)
	}
}

// Wait blocks until in-flight deliveries finish.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
