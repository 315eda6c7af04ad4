// Package hashing implements the domain-separated SHA-256 primitives shared
// by the binary, sum and sparse Merkle trees: a leading 0x00 byte marks a
// leaf hash, a leading 0x01 byte marks an internal node hash, so a leaf and
// an internal node can never collide regardless of content.
package hashing

import (
	"crypto/sha256"
	"fmt"
)

// Size is the length in bytes of every digest produced by this package.
const Size = sha256.Size

const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// Digest is a 32-byte SHA-256 output.
type Digest [Size]byte

// Bytes returns d as a byte slice.
func (d Digest) Bytes() []byte {
	return d[:]
}

// IsZero reports whether d is the all-zero sentinel (the sparse tree's
// zero_hash).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalBinary implements encoding.BinaryMarshaler so codecs that respect
// it (cbor among them) serialize a Digest as a 32-byte string rather than
// an array of 32 individually-tagged integers.
func (d Digest) MarshalBinary() ([]byte, error) {
	return d.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Digest) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("hashing: digest must be %d bytes, got %d", Size, len(data))
	}
	copy(d[:], data)
	return nil
}

// Empty is the Merkle tree hash of an empty list: SHA-256 of the empty
// string.
func Empty() Digest {
	return Digest(sha256.Sum256(nil))
}

// Zero is the all-zero 32-byte sentinel used by the sparse tree to denote
// an absent subtree.
func Zero() Digest {
	return Digest{}
}

// Leaf computes leaf_hash(x) = H(0x00 || x).
func Leaf(data []byte) Digest {
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	h.Write(data)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Node computes node_hash(l, r) = H(0x01 || l || r).
func Node(left, right Digest) Digest {
	h := sha256.New()
	h.Write([]byte{nodePrefix})
	h.Write(left[:])
	h.Write(right[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Sum256 hashes arbitrary data with no domain prefix; used for sparse-tree
// key and value hashing (hash(user_key), hash(user_data)).
func Sum256(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// SparseLeaf computes the identity hash of a sparse-tree leaf from its
// already-hashed key and value: H(0x00 || keyHash || dataHash). Binding both
// keyHash and dataHash into the leaf's own identity is what lets the
// surrounding spine authenticate the value, not just the key's presence.
func SparseLeaf(keyHash, dataHash Digest) Digest {
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	h.Write(keyHash[:])
	h.Write(dataHash[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
