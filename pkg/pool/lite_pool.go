// Package pool is a typed sync.Pool. Values implementing Resettable are
// reset on Put, so borrowers always get a clean value back from Get.
package pool

import (
	"fmt"
	"sync"
)

type Resettable interface {
	Reset()
}

type Pool[T any] struct {
	pool sync.Pool
}

// NewLitePool builds a pool around newFn, which must not return nil
func NewLitePool[T any](newFn func() T) (*Pool[T], error) {
	if newFn == nil {
		return nil, fmt.Errorf("litepool: constructor must not be nil")
	}
	if any(newFn()) == nil {
		return nil, fmt.Errorf("litepool: constructor returned nil")
	}

	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return newFn() },
		},
	}, nil
}

// MustNewLitePool is NewLitePool for constructors known to be valid
func MustNewLitePool[T any](newFn func() T) *Pool[T] {
	p, err := NewLitePool(newFn)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pool[T]) Get() T {
	//nolint:forcetypeassert // New always yields a T
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(v T) {
	if r, ok := any(v).(Resettable); ok {
		r.Reset()
	}
	p.pool.Put(v)
}
