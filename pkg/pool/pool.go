// Package pool предоставляет типизированную обёртку над sync.Pool для
// объектов, умеющих сбрасывать своё состояние.
package pool

import "sync"

// Resettable — объект, способный сбросить состояние к начальным значениям.
//
// Reset должен сохранять выделенную ёмкость срезов и map, чтобы
// переиспользование объекта не теряло аллокации.
type Resettable interface {
	Reset()
}

// Pool — пул переиспользуемых объектов типа T.
type Pool[T Resettable] struct {
	p sync.Pool
}

// New создаёт пул с функцией-конструктором newFn.
func New[T Resettable](newFn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() any { return newFn() },
		},
	}
}

// Get возвращает объект из пула или создаёт новый.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put сбрасывает объект и возвращает его в пул.
func (p *Pool[T]) Put(v T) {
	v.Reset()
	p.p.Put(v)
}
