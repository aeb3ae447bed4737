// Package pool типизированный пул переиспользуемых объектов поверх sync.Pool.
package pool

import "sync"

// Pool хранит объекты типа T и сбрасывает их при возврате
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New создает пул. newFn вызывается, когда свободных объектов нет,
// reset приводит объект в исходное состояние перед возвратом в пул.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() any {
		return newFn()
	}
	return p
}

// Get возвращает объект из пула или новый
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put сбрасывает объект и возвращает его в пул
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// With выдаёт объект на время вызова fn
func (p *Pool[T]) With(fn func(T) error) error {
	x := p.Get()
	defer p.Put(x)
	return fn(x)
}
