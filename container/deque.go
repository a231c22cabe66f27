package container

// Deque is a double-ended queue backed by a slice. The zero value is not
// usable; create one with NewDeque.
type Deque[T any] struct {
	items []T
}

// NewDeque creates an empty deque with room for capacity elements before the
// backing slice grows.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Deque[T]{items: make([]T, 0, capacity)}
}

// PushFront inserts v at the head of the queue.
func (d *Deque[T]) PushFront(v T) {
	var zero T
	d.items = append(d.items, zero)
	copy(d.items[1:], d.items)
	d.items[0] = v
}

// PushBack appends v at the tail of the queue.
func (d *Deque[T]) PushBack(v T) {
	d.items = append(d.items, v)
}

// PopFront removes and returns the head of the queue. The second return value
// is false when the queue is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if len(d.items) == 0 {
		return zero, false
	}
	v := d.items[0]
	d.items[0] = zero
	d.items = d.items[1:]
	return v, true
}

// Len returns the number of queued elements.
func (d *Deque[T]) Len() int {
	return len(d.items)
}

// Clear drops every queued element.
func (d *Deque[T]) Clear() {
	d.items = d.items[:0]
}
