// Package fastrand hands out uniform random draws for sampling decisions
// without contending on the global math/rand lock.
package fastrand

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/stripe/emitter/internal/safepool"
)

// seed reads a seed from crypto/rand. If the system entropy source is
// unavailable the clock is used instead; sampling only needs the draws to
// be uncorrelated between goroutines, not unpredictable.
func seed() int64 {
	var buf [8]byte
	if n, err := crand.Read(buf[:]); n != len(buf) || err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// RandPool is a pool of independently seeded *rand.Rand instances. Its
// methods are safe for concurrent use; each call borrows one generator for
// the duration of a single draw.
type RandPool struct {
	pool *safepool.Pool[*rand.Rand]
}

// NewRandPool returns a RandPool whose generators are seeded from
// crypto/rand.
func NewRandPool() *RandPool {
	return &RandPool{
		pool: safepool.NewPool(func() *rand.Rand {
			// nolint:gosec G404: sampling does not need a CSPRNG
			return rand.New(rand.NewSource(seed()))
		}),
	}
}

// Float64 returns a pseudo-random number in the half-open interval [0.0,1.0).
func (p *RandPool) Float64() float64 {
	r := p.pool.Get()
	defer p.pool.Put(r)
	return r.Float64()
}

// Int63 returns a non-negative pseudo-random 63-bit integer.
func (p *RandPool) Int63() int64 {
	r := p.pool.Get()
	defer p.pool.Put(r)
	return r.Int63()
}
