// Package safepool wraps sync.Pool with a typed API. The emitter uses it
// for per-goroutine random sources and for the scratch buffers that
// commands are formatted into.
package safepool

import (
	"sync"
)

// Pool is a typed sync.Pool. An optional reset function runs on every
// item handed back with Put, so Get never observes state left behind by
// a previous user.
type Pool[T any] struct {
	p     sync.Pool
	reset func(T) T
}

// NewPool returns a Pool that allocates new items with newFn.
func NewPool[T any](newFn func() T) *Pool[T] {
	return NewResettingPool(newFn, nil)
}

// NewResettingPool returns a Pool that allocates with newFn and passes
// every returned item through reset before it is pooled again. A nil
// reset keeps items as they are.
func NewResettingPool[T any](newFn func() T, reset func(T) T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() interface{} {
				return newFn()
			},
		},
		reset: reset,
	}
}

// Get returns a pooled item, allocating one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put hands item back for reuse.
func (p *Pool[T]) Put(item T) {
	if p.reset != nil {
		item = p.reset(item)
	}
	p.p.Put(item)
}
