package sum

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
type Store = storage.Storage[position.Position, Node]

// Tree is an append-only binary Merkle tree whose every node additionally
// carries a running fee sum. Its shape and persistence model mirror
// pkg/merkle/binary exactly; only the hash and fee-accumulation rules
// differ. Fee accumulation is plain uint64 addition and is not checked for
// overflow.
type Tree struct {
	store       Store
	stack       *forest.Stack[Node]
	leaves      [][]byte
	leafFees    []uint64
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

// Push appends a new leaf with the given fee.
func (t *Tree) Push(fee uint64, data []byte) error {
	leafHash := hashing.LeafSum(fee, data)
	pos := position.FromLeafIndex(t.leavesCount)
	node := Node{Position: pos, Fee: fee, Hash: leafHash}
	if _, _, err := t.store.Insert(pos, node); err != nil {
		return &storage.StorageError{Op: "sum.Tree.Push", Err: err}
	}

	leafCopy := make([]byte, len(data))
	copy(leafCopy, data)
	t.leaves = append(t.leaves, leafCopy)
	t.leafFees = append(t.leafFees, fee)

	err := t.stack.Push(node, func(older, newer Node) (Node, error) {
		merged, _ := combinePush(older, newer)
		if _, _, err := t.store.Insert(merged.Position, merged); err != nil {
			return Node{}, &storage.StorageError{Op: "sum.Tree.Push", Err: err}
		}
		return merged, nil
	})
	if err != nil {
		return err
	}
	t.leavesCount++
	return nil
}

// Root returns the current root digest and its total fee. An empty tree's
// root is the SHA-256 hash of the empty string with a zero fee.
func (t *Tree) Root() (hashing.Digest, uint64, error) {
	if t.leavesCount == 0 {
		return hashing.Empty(), 0, nil
	}
	root, ok, err := t.stack.Root(func(deeper, shallower Node) (Node, error) {
		return combineRoot(deeper, shallower)
	})
	if err != nil {
		return hashing.Digest{}, 0, err
	}
	if !ok {
		return hashing.Empty(), 0, nil
	}
	return root.Hash, root.Fee, nil
}

// Prove builds a fresh inclusion proof for the leaf at index, binding both
// its data and its fee. It is structured identically to
// pkg/merkle/binary.Tree.Prove; see that implementation for the algorithm.
func (t *Tree) Prove(index uint64) (hashing.Digest, uint64, *ProofSet, error) {
	if index >= t.leavesCount {
		return hashing.Digest{}, 0, nil, merkleerr.NewInvalidArgument("sum.Tree.Prove", fmt.Sprintf("index %d out of range for %d leaves", index, t.leavesCount))
	}
	root, totalFee, err := t.Root()
	if err != nil {
		return hashing.Digest{}, 0, nil, err
	}

	proofSet := NewProofSet()
	leafCopy := make([]byte, len(t.leaves[index]))
	copy(leafCopy, t.leaves[index])
	proofSet.Push(t.leafFees[index], leafCopy)

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
		return hashing.Digest{}, 0, nil, fmt.Errorf("sum.Tree.Prove: failed to locate leaf %d in the subtree stack", index)
	}

	it := NewPathIterator(position.FromLeafIndex(index), blockHeight)
	for {
		step, ok := it.Next()
		if !ok {
			break
		}
		sibNode, found, err := t.store.Get(step.Sibling)
		if err != nil {
			return hashing.Digest{}, 0, nil, &storage.StorageError{Op: "sum.Tree.Prove", Err: err}
		}
		if !found {
			return hashing.Digest{}, 0, nil, fmt.Errorf("sum.Tree.Prove: missing sibling node at position %d", step.Sibling.Index())
		}
		proofSet.Push(sibNode.Fee, sibNode.Hash.Bytes())
	}

	if blockHeightIdx > 0 {
		acc, _ := t.stack.NodeAt(heights[0])
		for i := 1; i < blockHeightIdx; i++ {
			next, _ := t.stack.NodeAt(heights[i])
			merged, err := combineRoot(next, acc)
			if err != nil {
				return hashing.Digest{}, 0, nil, err
			}
			acc = merged
		}
		proofSet.Push(acc.Fee, acc.Hash.Bytes())
	}
	for i := blockHeightIdx + 1; i < len(heights); i++ {
		next, _ := t.stack.NodeAt(heights[i])
		proofSet.Push(next.Fee, next.Hash.Bytes())
	}

	return root, totalFee, proofSet, nil
}
