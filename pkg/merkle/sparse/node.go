// Package sparse implements the fixed-depth-256 sparse Merkle tree: a
// mapping from 32-byte keys to 32-byte values authenticated by a single
// root hash, where every one of the 2^256 possible keys has a well-defined
// (almost always empty) position.
package sparse

import (
	"encoding/binary"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/merkleerr"
)

// NodeSize is the length of a serialized Node: a 4-byte big-endian height,
// a 1-byte prefix, and two 32-byte fields.
const NodeSize = 4 + 1 + hashing.Size + hashing.Size

const (
	prefixLeaf     = 0x00
	prefixInternal = 0x01
)

// Node is a single sparse-tree vertex. For a leaf, Lo and Hi hold
// hash(user_key) and hash(user_data); for an internal node they hold the
// left and right child hashes.
type Node struct {
	Height uint32
	IsLeaf bool
	Lo     hashing.Digest
	Hi     hashing.Digest
}

// Hash computes the node's identity: SparseLeaf(Lo, Hi) for a leaf,
// Node(Lo, Hi) for an internal node.
func (n Node) Hash() hashing.Digest {
	if n.IsLeaf {
		return hashing.SparseLeaf(n.Lo, n.Hi)
	}
	return hashing.Node(n.Lo, n.Hi)
}

// Encode serializes n as height_be4 || prefix || lo32 || hi32.
func (n Node) Encode() []byte {
	buf := make([]byte, NodeSize)
	binary.BigEndian.PutUint32(buf[0:4], n.Height)
	if n.IsLeaf {
		buf[4] = prefixLeaf
	} else {
		buf[4] = prefixInternal
	}
	copy(buf[5:37], n.Lo[:])
	copy(buf[37:69], n.Hi[:])
	return buf
}

// DecodeNode parses the output of Node.Encode.
func DecodeNode(data []byte) (Node, error) {
	if len(data) != NodeSize {
		return Node{}, merkleerr.NewDecode("sparse.DecodeNode", "wrong length", 0)
	}
	var n Node
	n.Height = binary.BigEndian.Uint32(data[0:4])
	switch data[4] {
	case prefixLeaf:
		n.IsLeaf = true
	case prefixInternal:
		n.IsLeaf = false
	default:
		return Node{}, merkleerr.NewDecode("sparse.DecodeNode", "unknown prefix byte", data[4])
	}
	copy(n.Lo[:], data[5:37])
	copy(n.Hi[:], data[37:69])
	return n, nil
}
