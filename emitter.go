// Package emitter formats counters, timers and gauges as statsd commands
// and sends them to a collection daemon, either one datagram per
// measurement or as a batch on Flush.
//
// Emission is best-effort. Nothing an Emitter does on behalf of a caller
// returns an error or panics because a payload could not be delivered.
package emitter

import (
	"sync/atomic"
	"time"
)

// Transport hands a payload to the network. Emitters never close or
// otherwise manage the lifetime of their transport.
type Transport interface {
	Transmit(payload string) error
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(payload string) error

// Transmit calls f(payload).
func (f TransportFunc) Transmit(payload string) error {
	return f(payload)
}

// Stats are running totals for one Emitter.
type Stats struct {
	// Transmitted counts payloads the transport accepted.
	Transmitted uint64
	// Failed counts payloads the transport rejected or panicked on.
	Failed uint64
	// SampledOut counts measurements the sampler dropped.
	SampledOut uint64
	// Invalid counts measurements dropped for an unknown kind or a
	// sample rate at or below zero.
	Invalid uint64
	// Buffered counts measurements appended for a later Flush.
	Buffered uint64
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithSampler replaces the default RandomSampler.
func WithSampler(s Sampler) Option {
	return func(e *Emitter) {
		if s != nil {
			e.sampler = s
		}
	}
}

// Emitter sends statsd measurements through a Transport. It is safe for
// concurrent use.
type Emitter struct {
	transport Transport
	sampler   Sampler
	buffer    Buffer

	transmitted atomic.Uint64
	failed      atomic.Uint64
	sampledOut  atomic.Uint64
	invalid     atomic.Uint64
	buffered    atomic.Uint64
}

// New returns an Emitter writing to t.
func New(t Transport, opts ...Option) *Emitter {
	e := &Emitter{
		transport: t,
		sampler:   NewRandomSampler(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Send samples the measurement and, if it is sampled in, transmits it
// right away as its own payload. Commands already buffered are left alone.
func (e *Emitter) Send(kind Kind, name string, value Value, rate float64) {
	cmd, ok := e.command(kind, name, value, rate)
	if !ok {
		return
	}
	e.transmit(cmd)
}

// Add samples the measurement and, if it is sampled in, buffers it for the
// next Flush. Sampling is decided here and never revisited at flush time.
func (e *Emitter) Add(kind Kind, name string, value Value, rate float64) {
	cmd, ok := e.command(kind, name, value, rate)
	if !ok {
		return
	}
	e.buffer.Append(cmd)
	e.buffered.Add(1)
}

// Flush transmits every buffered command as one newline separated payload.
// The buffer is empty afterwards whether or not the transmission worked;
// failed batches are not kept or retried.
func (e *Emitter) Flush() {
	payload := e.buffer.DrainJoined(LineSeparator)
	if payload == "" {
		return
	}
	e.transmit(payload)
}

// Commands returns the buffered commands in the order they were added.
func (e *Emitter) Commands() []string {
	return e.buffer.Commands()
}

// Len returns the number of buffered commands.
func (e *Emitter) Len() int {
	return e.buffer.Len()
}

// Stats returns a snapshot of the emitter's counters.
func (e *Emitter) Stats() Stats {
	return Stats{
		Transmitted: e.transmitted.Load(),
		Failed:      e.failed.Load(),
		SampledOut:  e.sampledOut.Load(),
		Invalid:     e.invalid.Load(),
		Buffered:    e.buffered.Load(),
	}
}

func (e *Emitter) command(kind Kind, name string, value Value, rate float64) (string, bool) {
	rate = clampRate(rate)
	if !kind.Valid() || rate == 0 {
		e.invalid.Add(1)
		return "", false
	}
	if !e.sampler.ShouldSend(rate) {
		e.sampledOut.Add(1)
		return "", false
	}
	return Format(name, value, kind, rate), true
}

// transmit hands payload to the transport and discards any error or panic
// it raises. Metrics are best-effort: a collector being down must never
// change how the instrumented program behaves. Do not make this return
// the error.
func (e *Emitter) transmit(payload string) {
	defer func() {
		if recover() != nil {
			e.failed.Add(1)
		}
	}()
	if e.transport == nil {
		e.failed.Add(1)
		return
	}
	if err := e.transport.Transmit(payload); err != nil {
		e.failed.Add(1)
		return
	}
	e.transmitted.Add(1)
}

// Count sends a counter increment of value.
func (e *Emitter) Count(name string, value int64, rate float64) {
	e.Send(Counting, name, Int(value), rate)
}

// Incr sends a counter increment of one.
func (e *Emitter) Incr(name string, rate float64) {
	e.Count(name, 1, rate)
}

// Decr sends a counter decrement of one.
func (e *Emitter) Decr(name string, rate float64) {
	e.Count(name, -1, rate)
}

// Gauge sends a gauge reading.
func (e *Emitter) Gauge(name string, value float64, rate float64) {
	e.Send(Gauge, name, Float(value), rate)
}

// Timing sends d as a timer in milliseconds.
func (e *Emitter) Timing(name string, d time.Duration, rate float64) {
	e.Send(Timing, name, Duration(d), rate)
}

// TimeInMilliseconds sends a timer already expressed in milliseconds.
func (e *Emitter) TimeInMilliseconds(name string, ms float64, rate float64) {
	e.Send(Timing, name, Float(ms), rate)
}

// Time runs fn and sends how long it took as a timer. fn always runs,
// even if the timing ends up sampled out.
func (e *Emitter) Time(name string, rate float64, fn func()) {
	start := time.Now()
	fn()
	e.Timing(name, time.Since(start), rate)
}

// AddCount buffers a counter increment of value.
func (e *Emitter) AddCount(name string, value int64, rate float64) {
	e.Add(Counting, name, Int(value), rate)
}

// AddGauge buffers a gauge reading.
func (e *Emitter) AddGauge(name string, value float64, rate float64) {
	e.Add(Gauge, name, Float(value), rate)
}

// AddTiming buffers d as a timer in milliseconds.
func (e *Emitter) AddTiming(name string, d time.Duration, rate float64) {
	e.Add(Timing, name, Duration(d), rate)
}

// AddTime runs fn and buffers how long it took as a timer.
func (e *Emitter) AddTime(name string, rate float64, fn func()) {
	start := time.Now()
	fn()
	e.AddTiming(name, time.Since(start), rate)
}
