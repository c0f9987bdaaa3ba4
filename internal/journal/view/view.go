// Package view provides the immutable list snapshots returned by register
// queries. A snapshot is detached from the register that produced it: later
// register mutations never show through, and the snapshot itself rejects
// mutation attempts.
package view

import (
	"errors"
	"iter"
)

// ErrReadOnly is the panic value raised when a caller attempts to mutate a
// snapshot. Mutating a query result is structural misuse of the API rather
// than a business error, so it surfaces as a panic instead of an error
// return.
var ErrReadOnly = errors.New("view: list is read-only")

// List is an immutable snapshot of register contents. The zero value is an
// empty list.
type List[T any] struct {
	items []T
}

// NewList copies items into a fresh snapshot. The caller's slice can be
// reused or mutated afterwards without affecting the snapshot.
func NewList[T any](items []T) List[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return List[T]{items: cp}
}

// Len returns the number of items in the snapshot.
func (l List[T]) Len() int {
	return len(l.items)
}

// At returns the item at index i. It panics with an ordinary bounds error
// for out-of-range indexes, matching slice semantics.
func (l List[T]) At(i int) T {
	return l.items[i]
}

// All iterates the snapshot in order.
func (l List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range l.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Slice returns a fresh mutable copy of the snapshot's contents. Mutating
// the returned slice has no effect on the snapshot or the register.
func (l List[T]) Slice() []T {
	cp := make([]T, len(l.items))
	copy(cp, l.items)
	return cp
}

// Set panics with ErrReadOnly. It exists so that misuse fails loudly and
// distinctly from business errors.
func (l List[T]) Set(int, T) {
	panic(ErrReadOnly)
}

// Append panics with ErrReadOnly. Callers that need a mutable sequence must
// go through Slice.
func (l List[T]) Append(...T) {
	panic(ErrReadOnly)
}
