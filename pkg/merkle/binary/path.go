package binary

import "github.com/fuellabs/merkle-go/pkg/merkle/position"

// PathStep is one step of a climb from a leaf toward the root: the
// position being left behind and the sibling position consulted before
// moving to its parent.
type PathStep struct {
	Position position.Position
	Sibling  position.Position
}

// PathIterator walks a leaf's positions toward the root one parent step at
// a time. It mirrors the shape of storage_binary/node.rs's ProofIter, but
// derives each sibling from position algebra rather than comparing stored
// parent/child key links, since this tree addresses nodes by in-order
// position rather than by pointer.
type PathIterator struct {
	cur   position.Position
	steps uint
	taken uint
}

// NewPathIterator returns an iterator that climbs from leaf for exactly
// steps levels.
func NewPathIterator(leaf position.Position, steps uint) *PathIterator {
	return &PathIterator{cur: leaf, steps: steps}
}

// Next returns the next step and advances the iterator, or ok=false once
// steps levels have been consumed.
func (it *PathIterator) Next() (PathStep, bool) {
	if it.taken >= it.steps {
		return PathStep{}, false
	}
	step := PathStep{Position: it.cur, Sibling: it.cur.Sibling()}
	it.cur = it.cur.Parent()
	it.taken++
	return step, true
}
