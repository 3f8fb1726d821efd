package emitter

import (
	"errors"
	"math"

	"github.com/stripe/emitter/internal/fastrand"
)

// ErrInvalidSampleRate is returned by ValidateRate for rates outside (0,1].
var ErrInvalidSampleRate = errors.New("sample rate must be in (0,1]")

// Sampler decides whether a single occurrence of a measurement sampled at
// rate is emitted.
type Sampler interface {
	ShouldSend(rate float64) bool
}

// SamplerFunc adapts an ordinary function to the Sampler interface.
type SamplerFunc func(rate float64) bool

// ShouldSend calls f(rate).
func (f SamplerFunc) ShouldSend(rate float64) bool {
	return f(rate)
}

// RandomSampler emits an occurrence with probability rate. Decisions are
// independent of each other.
type RandomSampler struct {
	draw func() float64
}

// NewRandomSampler returns a RandomSampler drawing uniform values in [0,1)
// from draw. A nil draw uses a pooled, crypto-seeded generator.
func NewRandomSampler(draw func() float64) *RandomSampler {
	if draw == nil {
		draw = fastrand.Float64
	}
	return &RandomSampler{draw: draw}
}

// ShouldSend reports whether to emit. A rate of 1 or more always emits
// and draws nothing.
func (s *RandomSampler) ShouldSend(rate float64) bool {
	if rate >= 1 {
		return true
	}
	return s.draw() < rate
}

// ValidateRate returns ErrInvalidSampleRate unless rate is in (0,1].
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || rate <= 0 || rate > 1 {
		return ErrInvalidSampleRate
	}
	return nil
}

// clampRate maps rate into [0,1]. Rates above 1 mean "always"; NaN and
// rates at or below 0 mean "never".
func clampRate(rate float64) float64 {
	switch {
	case math.IsNaN(rate) || rate <= 0:
		return 0
	case rate > 1:
		return 1
	}
	return rate
}
