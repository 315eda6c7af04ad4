// Package sum implements the fee-carrying variant of the binary Merkle
// tree: every node additionally carries a uint64 running sum, accumulated
// by addition on each internal join, so a proof can attest to both a
// leaf's inclusion and its contribution to the tree's total.
package sum

import (
	"encoding/binary"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/merkleerr"
	"github.com/fuellabs/merkle-go/pkg/merkle/position"
)

// NodeSize is the length of a serialized Node: an 8-byte big-endian
// position index, an 8-byte big-endian fee, and a 32-byte digest.
const NodeSize = 8 + 8 + hashing.Size

// Node is a stored vertex of the sum tree.
type Node struct {
	Position position.Position
	// Fee is the running sum of this node's subtree, accumulated by plain
	// uint64 addition with no overflow check; callers must ensure the
	// total across all leaves stays under 2^64.
	Fee  uint64
	Hash hashing.Digest
}

// Encode serializes n as pos_be8 || fee_be8 || hash.
func (n Node) Encode() []byte {
	buf := make([]byte, NodeSize)
	binary.BigEndian.PutUint64(buf[:8], n.Position.Index())
	binary.BigEndian.PutUint64(buf[8:16], n.Fee)
	copy(buf[16:], n.Hash[:])
	return buf
}

// DecodeNode parses the output of Node.Encode.
func DecodeNode(data []byte) (Node, error) {
	if len(data) != NodeSize {
		return Node{}, merkleerr.NewDecode("sum.DecodeNode", "wrong length", 0)
	}
	var n Node
	n.Position = position.FromIndex(binary.BigEndian.Uint64(data[:8]))
	n.Fee = binary.BigEndian.Uint64(data[8:16])
	copy(n.Hash[:], data[16:])
	return n, nil
}

func combinePush(older, newer Node) (Node, error) {
	fee := older.Fee + newer.Fee
	return Node{
		Position: older.Position.Parent(),
		Fee:      fee,
		Hash:     hashing.NodeSum(older.Fee, older.Hash, newer.Fee, newer.Hash),
	}, nil
}

func combineRoot(deeper, shallower Node) (Node, error) {
	fee := deeper.Fee + shallower.Fee
	return Node{
		Fee:  fee,
		Hash: hashing.NodeSum(deeper.Fee, deeper.Hash, shallower.Fee, shallower.Hash),
	}, nil
}
