// Package observable provides a value holder that broadcasts every change to its subscribers.
package observable

import "sync"

// Value holds a T behind a mutex. Readers get copies; writers go through Set or Update,
// and each new value is offered to every subscriber.
type Value[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   map[int]chan T
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial, subs: make(map[int]chan T)}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = value
	v.broadcast(value)
}

// Update applies fn to the current value atomically and returns the result.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = fn(v.value)
	v.broadcast(v.value)
	return v.value
}

// Subscribe returns a channel that first receives the current value and then every change.
// Slow subscribers only see the latest value. Call the returned func to unsubscribe.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	ch := make(chan T, 1)
	ch <- v.value
	v.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// broadcast must be called with mu held.
func (v *Value[T]) broadcast(value T) {
	for _, ch := range v.subs {
		select {
		case ch <- value:
		default:
			// drop the stale value so the subscriber always ends on the newest one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- value:
			default:
			}
		}
	}
}
