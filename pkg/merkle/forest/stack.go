// Package forest implements the append-only subtree stack shared by the
// binary and sum Merkle trees: the complete subtree roots, one per occupied
// height, held in a height-indexed slot array with a bitset marking which
// heights are occupied. Pushing a leaf repeatedly merges equal-height neighbours;
// folding the stack into a single root always treats the deeper node as
// the left operand.
package forest

import "github.com/bits-and-blooms/bitset"

// Stack holds at most one node per height. The height of a leaf is 0;
// internal nodes take the height of their tallest child plus one.
type Stack[T any] struct {
	occupied *bitset.BitSet
	nodes    []T
}

// New returns an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{occupied: bitset.New(64)}
}

func (s *Stack[T]) ensure(height uint) {
	for len(s.nodes) <= int(height) {
		var zero T
		s.nodes = append(s.nodes, zero)
	}
}

// IsEmpty reports whether the stack holds no nodes at all.
func (s *Stack[T]) IsEmpty() bool {
	return s.occupied.None()
}

// Push inserts a new leaf-height node, merging it with existing equal-height
// occupants via combine until it lands in an empty slot. combine(older, newer)
// must return the node one height taller than its operands.
func (s *Stack[T]) Push(node T, combine func(older, newer T) (T, error)) error {
	height := uint(0)
	for s.occupied.Test(height) {
		merged, err := combine(s.nodes[height], node)
		if err != nil {
			return err
		}
		s.occupied.Clear(height)
		node = merged
		height++
	}
	s.ensure(height)
	s.nodes[height] = node
	s.occupied.Set(height)
	return nil
}

// Root folds every occupied height into a single node. combine(deeper,
// shallower) must return the node representing their concatenation; the
// deeper node is always passed as the left (first) operand.
func (s *Stack[T]) Root(combine func(deeper, shallower T) (T, error)) (T, bool, error) {
	var zero T
	first, ok := s.occupied.NextSet(0)
	if !ok {
		return zero, false, nil
	}
	root := s.nodes[first]
	for h := first + 1; h < uint(len(s.nodes)); h++ {
		if !s.occupied.Test(h) {
			continue
		}
		merged, err := combine(s.nodes[h], root)
		if err != nil {
			return zero, false, err
		}
		root = merged
	}
	return root, true, nil
}

// Heights returns the occupied heights in increasing order.
func (s *Stack[T]) Heights() []uint {
	heights := make([]uint, 0, s.occupied.Count())
	for h, ok := s.occupied.NextSet(0); ok; h, ok = s.occupied.NextSet(h + 1) {
		heights = append(heights, h)
	}
	return heights
}

// NodeAt returns the node occupying the given height.
func (s *Stack[T]) NodeAt(height uint) (T, bool) {
	if !s.occupied.Test(height) {
		var zero T
		return zero, false
	}
	return s.nodes[height], true
}
