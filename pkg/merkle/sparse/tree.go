package sparse

import (
	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/storage"
)

// NodeStore is the keyed mapping a Tree persists its nodes into, addressed
// by each node's own content hash: the map the spine traversal itself
// walks.
type NodeStore = storage.Storage[hashing.Digest, Node]

// KeyIndex maps a key's hash to the digest of its current leaf. It mirrors
// the design's "storage key is hash(user_key) for leaves" addressing as a
// secondary index alongside NodeStore; the spine traversal never consults
// it, since descent is driven purely by the key's bit path.
type KeyIndex = storage.Storage[hashing.Digest, hashing.Digest]

// Tree is a sparse Merkle tree of fixed depth 256. Root() always reflects
// the most recent Update or Delete; there is no separate "recompute"
// step.
type Tree struct {
	nodes NodeStore
	keys  KeyIndex
	root  hashing.Digest
}

// New returns an empty tree (root = zero_hash) backed by nodes and keys.
func New(nodes NodeStore, keys KeyIndex) *Tree {
	return &Tree{nodes: nodes, keys: keys, root: hashing.Zero()}
}

// Root returns the current root hash.
func (t *Tree) Root() hashing.Digest {
	return t.root
}

// SetRoot restores the tree's root, e.g. after reopening a caller-persisted
// node store whose spine was built by a previous process. It does not
// validate that root is actually reachable in the backing store; an
// invalid root surfaces as a lookup failure on the next Update or Delete.
func (t *Tree) SetRoot(root hashing.Digest) {
	t.root = root
}

func (t *Tree) lookup(h hashing.Digest) (Node, bool, error) {
	return t.nodes.Get(h)
}

// Lookup exposes the tree's node resolver for external callers such as the
// checkpointed proof reconstruction, which needs to walk the same storage
// independently of any one Tree method.
func (t *Tree) Lookup(h hashing.Digest) (Node, bool, error) {
	return t.lookup(h)
}

// Update places data at the leaf addressed by hash(key), overwriting any
// existing value for key.
func (t *Tree) Update(key, data []byte) error {
	keyHash := hashing.Sum256(key)
	dataHash := hashing.Sum256(data)
	leaf := Node{Height: 0, IsLeaf: true, Lo: keyHash, Hi: dataHash}
	leafDigest := leaf.Hash()

	if _, _, err := t.nodes.Insert(leafDigest, leaf); err != nil {
		return &storage.StorageError{Op: "sparse.Tree.Update", Err: err}
	}
	if _, _, err := t.keys.Insert(keyHash, leafDigest); err != nil {
		return &storage.StorageError{Op: "sparse.Tree.Update", Err: err}
	}
	return t.rebuild(keyHash, leafDigest)
}

// Delete replaces the leaf for key with zero_hash. Deleting an absent key
// leaves Root() unchanged.
func (t *Tree) Delete(key []byte) error {
	keyHash := hashing.Sum256(key)
	if _, _, err := t.keys.Remove(keyHash); err != nil {
		return &storage.StorageError{Op: "sparse.Tree.Delete", Err: err}
	}
	return t.rebuild(keyHash, hashing.Zero())
}

// rebuild walks the current spine for keyHash to collect every sibling
// along the way, then recomputes and persists the path from leafDigest (a
// real leaf for Update, zero_hash for Delete) back up to a new root,
// short-circuiting any all-zero join instead of hashing it.
func (t *Tree) rebuild(keyHash, leafDigest hashing.Digest) error {
	steps, err := Walk(t.root, keyHash, t.lookup)
	if err != nil {
		return err
	}

	cur := leafDigest
	for d := Depth - 1; d >= 0; d-- {
		bit := BitAt(keyHash, d)
		sibling := steps[d].Sibling

		var lo, hi hashing.Digest
		if bit == 0 {
			lo, hi = cur, sibling
		} else {
			lo, hi = sibling, cur
		}

		if lo.IsZero() && hi.IsZero() {
			cur = hashing.Zero()
			continue
		}

		node := Node{Height: uint32(Depth - d), IsLeaf: false, Lo: lo, Hi: hi}
		h := node.Hash()
		if _, _, err := t.nodes.Insert(h, node); err != nil {
			return &storage.StorageError{Op: "sparse.Tree.rebuild", Err: err}
		}
		cur = h
	}

	t.root = cur
	return nil
}
