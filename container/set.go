package container

// Set is an unordered collection of unique values.
type Set[T comparable] struct {
	items map[T]struct{}
}

// NewSet creates an empty set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{items: make(map[T]struct{})}
}

// Insert adds v to the set. It reports whether v was actually inserted;
// inserting a value that is already present returns false.
func (s *Set[T]) Insert(v T) bool {
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

// Contains reports whether v is a member of the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Remove deletes v from the set. It reports whether v was present.
func (s *Set[T]) Remove(v T) bool {
	if _, ok := s.items[v]; !ok {
		return false
	}
	delete(s.items, v)
	return true
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// All returns the members in unspecified order.
func (s *Set[T]) All() []T {
	out := make([]T, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	return out
}

// Clear removes every member.
func (s *Set[T]) Clear() {
	clear(s.items)
}
