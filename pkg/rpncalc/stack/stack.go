// Package stack provides the LIFO used by the converter and the evaluator.
package stack

// Stack is a last-in first-out sequence of values.
// It is not safe for concurrent use; each calculation owns its stacks.
type Stack[T any] struct {
	items []T
}

// New creates an empty stack with room for capacity items.
func New[T any](capacity int) *Stack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push adds v on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top value.
// The second result is false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return v, true
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of values on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the stack holds no values.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Drain pops every remaining value, top first, and passes it to fn.
func (s *Stack[T]) Drain(fn func(T)) {
	for {
		v, ok := s.Pop()
		if !ok {
			return
		}
		fn(v)
	}
}
