// Package binary implements the RFC 6962-style binary Merkle tree: leaves
// are appended one at a time, each push folds the append-only subtree stack
// (see pkg/merkle/forest), and every node the stack ever produces is
// persisted under its in-order position so a proof for any past leaf can be
// rebuilt on demand.
package binary

import (
	"encoding/binary"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/merkleerr"
	"github.com/fuellabs/merkle-go/pkg/merkle/position"
)

// NodeSize is the length of a serialized Node: an 8-byte big-endian
// position index followed by a 32-byte digest.
const NodeSize = 8 + hashing.Size

// Node is a single stored vertex of the tree: its position in the in-order
// numbering and the digest that position resolves to.
type Node struct {
	Position position.Position
	Hash     hashing.Digest
}

// Encode serializes n as pos_be8 || hash.
func (n Node) Encode() []byte {
	buf := make([]byte, NodeSize)
	binary.BigEndian.PutUint64(buf[:8], n.Position.Index())
	copy(buf[8:], n.Hash[:])
	return buf
}

// DecodeNode parses the output of Node.Encode.
func DecodeNode(data []byte) (Node, error) {
	if len(data) != NodeSize {
		return Node{}, merkleerr.NewDecode("binary.DecodeNode", "wrong length", 0)
	}
	var n Node
	n.Position = position.FromIndex(binary.BigEndian.Uint64(data[:8]))
	copy(n.Hash[:], data[8:])
	return n, nil
}

// combinePush merges two equal-height, sibling-adjacent stack entries
// produced while pushing a new leaf. Their shared parent position is
// well-defined regardless of which operand it is derived from.
func combinePush(older, newer Node) (Node, error) {
	return Node{
		Position: older.Position.Parent(),
		Hash:     hashing.Node(older.Hash, newer.Hash),
	}, nil
}

// combineRoot merges two stack entries of differing height while folding
// the whole stack into a single root. The result does not correspond to a
// position in the tree as built so far and is never persisted.
func combineRoot(deeper, shallower Node) (Node, error) {
	return Node{Hash: hashing.Node(deeper.Hash, shallower.Hash)}, nil
}
