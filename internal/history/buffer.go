// Package history provides the fixed-capacity rolling store behind every
// tracked metric.
package history

import "slices"

// Buffer is a fixed-capacity FIFO ring. Once full, every Push evicts exactly
// the oldest element. Buffer is not safe for concurrent use; callers guard it.
type Buffer[T any] struct {
	items []T
	head  int // index of the oldest element
	size  int
}

// NewBuffer allocates a ring holding at most capacity elements. It panics if
// capacity is not positive.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("history: buffer capacity must be positive")
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends v as the newest element.
func (b *Buffer[T]) Push(v T) {
	tail := (b.head + b.size) % len(b.items)
	b.items[tail] = v
	if b.IsFull() {
		b.head = (b.head + 1) % len(b.items)
		return
	}
	b.size++
}

func (b *Buffer[T]) Len() int {
	return b.size
}

func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

func (b *Buffer[T]) IsFull() bool {
	return b.size == len(b.items)
}

// Newest returns the most recently pushed element.
func (b *Buffer[T]) Newest() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}
	return b.items[(b.head+b.size-1)%len(b.items)], true
}

// Items returns a copy of the contents, oldest first.
func (b *Buffer[T]) Items() []T {
	out := make([]T, b.size)
	for i := range out {
		out[i] = b.items[(b.head+i)%len(b.items)]
	}
	return out
}

// NewestFirst returns a copy of the contents, newest first, padded at the
// tail with pad until it is exactly Cap() long.
func (b *Buffer[T]) NewestFirst(pad T) []T {
	out := slices.Grow(b.Items(), len(b.items)-b.size)
	slices.Reverse(out)
	for len(out) < len(b.items) {
		out = append(out, pad)
	}
	return out
}
