package diagnostic

import (
	"context"
	"log/slog"
	"sync"
)

// Sink receives diagnostics from pipeline stages.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

type discard struct{}

func (discard) Report(Diagnostic) {}

// Discard drops every diagnostic.
var Discard Sink = discard{}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}

	return s
}

type tee []Sink

func (t tee) Report(d Diagnostic) {
	for _, s := range t {
		s.Report(d)
	}
}

// Tee fans every diagnostic out to all non-nil sinks.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

// DefaultRingSize is the capacity used by NewRing for non-positive sizes.
const DefaultRingSize = 1000

// Ring is a bounded, concurrency-safe sink. When full, the oldest
// diagnostic is dropped.
type Ring struct {
	mu      sync.Mutex
	buf     []Diagnostic
	start   int
	count   int
	dropped int
	counts  [DiagnosticError + 1]int
}

func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}

	return &Ring{buf: make([]Diagnostic, size)}
}

func (r *Ring) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Severity >= DiagnosticDebug && d.Severity <= DiagnosticError {
		r.counts[d.Severity]++
	}

	if r.count == len(r.buf) {
		r.buf[r.start] = d
		r.start = (r.start + 1) % len(r.buf)
		r.dropped++

		return
	}

	r.buf[(r.start+r.count)%len(r.buf)] = d
	r.count++
}

// Snapshot returns the retained diagnostics, oldest first.
func (r *Ring) Snapshot() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Diagnostic, r.count)
	for i := range r.count {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}

	return out
}

// Len returns the number of retained diagnostics.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// Dropped returns how many diagnostics were evicted.
func (r *Ring) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dropped
}

// Count returns how many diagnostics of the severity were reported,
// evicted ones included.
func (r *Ring) Count(s DiagnosticSeverity) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s < DiagnosticDebug || s > DiagnosticError {
		return 0
	}

	return r.counts[s]
}

// LogSink forwards diagnostics to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Report(d Diagnostic) {
	if s.Logger == nil {
		return
	}

	attrs := []slog.Attr{slog.String("code", d.Code)}
	if d.Column != "" {
		attrs = append(attrs, slog.String("column", d.Column))
	}

	if d.Row > 0 {
		attrs = append(attrs, slog.Int("row", d.Row))
	}

	if len(d.Suggestions) > 0 {
		attrs = append(attrs, slog.Any("suggestions", d.Suggestions))
	}

	s.Logger.LogAttrs(context.Background(), Level(d.Severity), d.Message, attrs...)
}

// Level maps a severity onto the slog level it is logged at.
func Level(s DiagnosticSeverity) slog.Level {
	switch s {
	case DiagnosticDebug:
		return slog.LevelDebug
	case DiagnosticInfo:
		return slog.LevelInfo
	case DiagnosticWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
