package binary

import (
	"fmt"

	"github.com/fuellabs/merkle-go/pkg/merkle/forest"
	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/merkleerr"
	"github.com/fuellabs/merkle-go/pkg/merkle/position"
	"github.com/fuellabs/merkle-go/pkg/merkle/storage"
)

// Store is the keyed mapping a Tree persists its nodes into, addressed by
// in-order position.
type Store = storage.Storage[position.Position, hashing.Digest]

// Tree is an append-only binary Merkle tree. Every node Push computes,
// leaf or internal, is written to Store under its position and never
// overwritten; Prove rebuilds an inclusion proof for any past leaf purely
// from that history plus the tree's current state, without requiring the
// caller to have declared the index ahead of time.
type Tree struct {
	store       Store
	stack       *forest.Stack[Node]
	leaves      [][]byte
	leavesCount uint64
}

// New returns an empty tree backed by store.
func New(store Store) *Tree {
	return &Tree{store: store, stack: forest.New[Node]()}
}

// LeavesCount returns the number of leaves pushed so far.
func (t *Tree) LeavesCount() uint64 {
	return t.leavesCount
}

// Push appends a new leaf, persisting it and every internal node its
// arrival completes.
func (t *Tree) Push(data []byte) error {
	leafHash := hashing.Leaf(data)
	pos := position.FromLeafIndex(t.leavesCount)
	if _, _, err := t.store.Insert(pos, leafHash); err != nil {
		return &storage.StorageError{Op: "binary.Tree.Push", Err: err}
	}

	leafCopy := make([]byte, len(data))
	copy(leafCopy, data)
	t.leaves = append(t.leaves, leafCopy)

	err := t.stack.Push(Node{Position: pos, Hash: leafHash}, func(older, newer Node) (Node, error) {
		merged, _ := combinePush(older, newer)
		if _, _, err := t.store.Insert(merged.Position, merged.Hash); err != nil {
			return Node{}, &storage.StorageError{Op: "binary.Tree.Push", Err: err}
		}
		return merged, nil
	})
	if err != nil {
		return err
	}
	t.leavesCount++
	return nil
}

// Root returns the current root digest. An empty tree's root is the SHA-256
// hash of the empty string.
func (t *Tree) Root() (hashing.Digest, error) {
	if t.leavesCount == 0 {
		return hashing.Empty(), nil
	}
	root, ok, err := t.stack.Root(func(deeper, shallower Node) (Node, error) {
		return combineRoot(deeper, shallower)
	})
	if err != nil {
		return hashing.Digest{}, err
	}
	if !ok {
		return hashing.Empty(), nil
	}
	return root.Hash, nil
}

// Prove builds a fresh inclusion proof for the leaf at index, regenerating
// it from the tree's current state each call; it never depends on any
// proof index declared during earlier pushes.
func (t *Tree) Prove(index uint64) (hashing.Digest, *ProofSet, error) {
	if index >= t.leavesCount {
		return hashing.Digest{}, nil, merkleerr.NewInvalidArgument("binary.Tree.Prove", fmt.Sprintf("index %d out of range for %d leaves", index, t.leavesCount))
	}
	root, err := t.Root()
	if err != nil {
		return hashing.Digest{}, nil, err
	}

	proofSet := NewProofSet()
	leafCopy := make([]byte, len(t.leaves[index]))
	copy(leafCopy, t.leaves[index])
	proofSet.Push(leafCopy)

	heights := t.stack.Heights()
	blockStart := uint64(0)
	blockHeightIdx := -1
	var blockHeight uint
	for i := len(heights) - 1; i >= 0; i-- {
		h := heights[i]
		size := uint64(1) << h
		if index < blockStart+size {
			blockHeight = h
			blockHeightIdx = i
			break
		}
		blockStart += size
	}
	if blockHeightIdx < 0 {
		return hashing.Digest{}, nil, fmt.Errorf("binary.Tree.Prove: failed to locate leaf %d in the subtree stack", index)
	}

	it := NewPathIterator(position.FromLeafIndex(index), blockHeight)
	for {
		step, ok := it.Next()
		if !ok {
			break
		}
		sibHash, found, err := t.store.Get(step.Sibling)
		if err != nil {
			return hashing.Digest{}, nil, &storage.StorageError{Op: "binary.Tree.Prove", Err: err}
		}
		if !found {
			return hashing.Digest{}, nil, fmt.Errorf("binary.Tree.Prove: missing sibling node at position %d", step.Sibling.Index())
		}
		proofSet.Push(sibHash.Bytes())
	}

	if blockHeightIdx > 0 {
		acc, _ := t.stack.NodeAt(heights[0])
		for i := 1; i < blockHeightIdx; i++ {
			next, _ := t.stack.NodeAt(heights[i])
			merged, err := combineRoot(next, acc)
			if err != nil {
				return hashing.Digest{}, nil, err
			}
			acc = merged
		}
		proofSet.Push(acc.Hash.Bytes())
	}
	for i := blockHeightIdx + 1; i < len(heights); i++ {
		next, _ := t.stack.NodeAt(heights[i])
		proofSet.Push(next.Hash.Bytes())
	}

	return root, proofSet, nil
}
