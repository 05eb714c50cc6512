package metrics

import (
	"maps"
	"time"

	"github.com/workvortex/vortex-api/internal/core"
	obserrors "github.com/workvortex/vortex-api/internal/observability/errors"
	"github.com/workvortex/vortex-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// CacheRecorder forwards read-cache events to a statsd sink.
type CacheRecorder struct {
	Sink statsd.Sink
}

var _ core.CacheMetrics = CacheRecorder{}

func (r CacheRecorder) RecordCacheEvent(ev core.CacheEvent) {
	if r.Sink == nil {
		return
	}
	result := ResultSuccess
	if !ev.Ok {
		result = ResultError
	}
	r.Sink.Count("cache.event", 1, map[string]string{
		"entity": string(ev.Entity),
		"tier":   string(ev.Tier),
		"op":     string(ev.Op),
		"result": result,
	})
}

// Operation describes one completed service operation.
type Operation struct {
	Name     string // e.g. "identity.resolve", "application.set_status"
	Result   string
	Duration time.Duration
	Err      error
	Tags     map[string]string
}

// EmitOperation emits a counter and, when Duration is set, a timing for op.
func EmitOperation(sink statsd.Sink, op Operation) {
	if sink == nil || op.Name == "" {
		return
	}

	tags := CloneTags(op.Tags)
	if tags == nil {
		tags = make(map[string]string, 2)
	}
	tags["result"] = op.Result
	if op.Err != nil && op.Result == ResultError {
		if class := obserrors.Classify(op.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count(op.Name+".count", 1, tags)
	if op.Duration > 0 {
		sink.Timing(op.Name+".duration", op.Duration, CloneTags(tags))
	}
}

// ResultFor maps an error to ResultSuccess or ResultError.
func ResultFor(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// CloneTags returns a shallow copy of src, or nil when src is empty.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}
