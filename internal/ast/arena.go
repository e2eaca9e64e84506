package ast

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// Arena owns the nodes of one kind. A node's id is its 1-based position, so
// the zero id never names a node.
type Arena[T any] struct {
	nodes []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{nodes: make([]T, 0, capHint)}
}

// Allocate stores value and returns its id.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.nodes = append(a.nodes, value)
	return a.Len()
}

// Get returns the node with id index, or nil for 0 and unknown ids.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || uint64(index) > uint64(len(a.nodes)) {
		return nil
	}
	return &a.nodes[index-1]
}

// Slice is the backing storage in allocation order. Do not append to it.
func (a *Arena[T]) Slice() []T { return a.nodes }

// All yields every id with its node, in allocation order.
func (a *Arena[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := range a.nodes {
			if !yield(uint32(i+1), &a.nodes[i]) { //nolint:gosec // Allocate checks the bound
				return
			}
		}
	}
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.nodes))
	if err != nil {
		panic(fmt.Errorf("ast: arena holds more than 2^32-1 nodes: %w", err))
	}
	return n
}
