// Package scopedstatsd wraps an emitter.Emitter for use by a single
// component: names are prefixed with the component's scope, each metric
// type gets a default sample rate, and a nil client is a valid no-op.
package scopedstatsd

import (
	"time"

	"github.com/stripe/emitter"
)

// Client represents the emitter functions that components call.
type Client interface {
	Gauge(name string, value float64, rate float64)
	Count(name string, value int64, rate float64)
	Incr(name string, rate float64)
	TimeInMilliseconds(name string, value float64, rate float64)
	Timing(name string, value time.Duration, rate float64)
	Flush()
}

// Ensure takes a client and wraps it in such a way that it is safe to
// store in a struct if it should be nil. Otherwise returns the Client
// unchanged.
func Ensure(cl Client) Client {
	if cl == nil {
		return &ScopedClient{}
	}
	return cl
}

// Rates holds the sample rate used for each metric type when a call
// passes a rate of 0.
type Rates struct {
	Count  float64
	Gauge  float64
	Timing float64
}

// ScopedClient prefixes metric names and fills in default sample rates
// before handing measurements to an Emitter. In buffered mode it adds to
// the emitter's buffer instead of sending, and Flush sends the batch.
type ScopedClient struct {
	emitter *emitter.Emitter

	prefix   string
	rates    Rates
	buffered bool
}

var _ Client = &ScopedClient{}

// NewClient returns a client that prefixes names with prefix and a dot.
// An empty prefix leaves names untouched; zero rates default to 1.
func NewClient(inner *emitter.Emitter, prefix string, rates Rates) *ScopedClient {
	s := &ScopedClient{
		emitter: inner,
		rates:   rates,
	}
	if prefix != "" {
		s.prefix = prefix + "."
	}
	return s
}

// Scope returns a client for a sub-component, named under s.
func (s *ScopedClient) Scope(name string) *ScopedClient {
	if s == nil {
		return nil
	}
	child := *s
	child.prefix = s.prefix + name + "."
	return &child
}

// Buffered returns a copy of s that buffers measurements until Flush.
func (s *ScopedClient) Buffered() *ScopedClient {
	if s == nil {
		return nil
	}
	child := *s
	child.buffered = true
	return &child
}

func pickRate(rate, fallback float64) float64 {
	if rate != 0 {
		return rate
	}
	if fallback != 0 {
		return fallback
	}
	return 1
}

func (s *ScopedClient) emit(kind emitter.Kind, name string, value emitter.Value, rate float64) {
	if s == nil || s.emitter == nil {
		return
	}
	if s.buffered {
		s.emitter.Add(kind, s.prefix+name, value, rate)
		return
	}
	s.emitter.Send(kind, s.prefix+name, value, rate)
}

func (s *ScopedClient) Gauge(name string, value float64, rate float64) {
	if s == nil {
		return
	}
	s.emit(emitter.Gauge, name, emitter.Float(value), pickRate(rate, s.rates.Gauge))
}

func (s *ScopedClient) Count(name string, value int64, rate float64) {
	if s == nil {
		return
	}
	s.emit(emitter.Counting, name, emitter.Int(value), pickRate(rate, s.rates.Count))
}

func (s *ScopedClient) Incr(name string, rate float64) {
	s.Count(name, 1, rate)
}

func (s *ScopedClient) TimeInMilliseconds(name string, value float64, rate float64) {
	if s == nil {
		return
	}
	s.emit(emitter.Timing, name, emitter.Float(value), pickRate(rate, s.rates.Timing))
}

func (s *ScopedClient) Timing(name string, value time.Duration, rate float64) {
	if s == nil {
		return
	}
	s.emit(emitter.Timing, name, emitter.Duration(value), pickRate(rate, s.rates.Timing))
}

// Flush sends anything buffered on the underlying emitter, including
// measurements added through other scopes sharing it.
func (s *ScopedClient) Flush() {
	if s == nil || s.emitter == nil {
		return
	}
	s.emitter.Flush()
}
