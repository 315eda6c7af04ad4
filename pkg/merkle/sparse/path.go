package sparse

import (
	"fmt"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
)

// Depth is the fixed height of the tree: every key's bit path has exactly
// this many bits.
const Depth = 256

// BitAt returns the bit at position i (0 = most significant) of a digest
// treated as a 256-bit big-endian bit string.
func BitAt(key hashing.Digest, i int) int {
	byteIndex := i / 8
	bitIndex := uint(7 - i%8)
	return int((key[byteIndex] >> bitIndex) & 1)
}

// PathStep is one step of a root-to-leaf descent: the node hash visited at
// a given depth (zero_hash if the subtree beneath it is empty) and the
// sibling hash that must be consulted to continue toward the leaf.
type PathStep struct {
	Depth   int
	Current hashing.Digest
	Sibling hashing.Digest
}

// Lookup resolves a node hash to its stored Node.
type Lookup func(hashing.Digest) (Node, bool, error)

// Walk descends from root toward the leaf addressed by key, consulting
// lookup at every level, and returns one PathStep per depth from 0 (the
// root itself) to Depth-1 (the level adjacent to the leaf).
// This is the path iterator the sparse tree's design calls for: the same
// traversal underpins both reads and the sibling collection Update/Delete
// need to recompute a spine.
func Walk(root, key hashing.Digest, lookup Lookup) ([]PathStep, error) {
	return WalkFrom(0, root, key, lookup)
}

// WalkFrom descends starting at startDepth with startHash as the node
// already reached at that depth, returning one PathStep per depth from
// startDepth to Depth-1. It lets a checkpointed reconstruction resume a
// walk from a stored checkpoint instead of the true root.
func WalkFrom(startDepth int, startHash, key hashing.Digest, lookup Lookup) ([]PathStep, error) {
	steps := make([]PathStep, 0, Depth-startDepth)
	cur := startHash
	for d := startDepth; d < Depth; d++ {
		if cur.IsZero() {
			for ; d < Depth; d++ {
				steps = append(steps, PathStep{Depth: d, Current: hashing.Zero(), Sibling: hashing.Zero()})
			}
			break
		}
		node, ok, err := lookup(cur)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("sparse: missing node %x on path", cur.Bytes())
		}
		bit := BitAt(key, d)
		var next, sibling hashing.Digest
		if bit == 0 {
			next, sibling = node.Lo, node.Hi
		} else {
			next, sibling = node.Hi, node.Lo
		}
		steps = append(steps, PathStep{Depth: d, Current: cur, Sibling: sibling})
		cur = next
	}
	return steps, nil
}
