package hashing

import (
	"crypto/sha256"
	"encoding/binary"
)

// LeafSum computes leaf_hash_sum(fee, x) = H(0x00 || fee_be8 || x), the
// sum tree's fee-aware leaf hash.
func LeafSum(fee uint64, data []byte) Digest {
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	var feeBuf [8]byte
	binary.BigEndian.PutUint64(feeBuf[:], fee)
	h.Write(feeBuf[:])
	h.Write(data)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// NodeSum computes
// node_hash_sum(lf, l, rf, r) = H(0x01 || lf_be8 || l || rf_be8 || r),
// the sum tree's fee-aware internal node hash.
func NodeSum(leftFee uint64, left Digest, rightFee uint64, right Digest) Digest {
	h := sha256.New()
	h.Write([]byte{nodePrefix})
	var feeBuf [8]byte
	binary.BigEndian.PutUint64(feeBuf[:], leftFee)
	h.Write(feeBuf[:])
	h.Write(left[:])
	binary.BigEndian.PutUint64(feeBuf[:], rightFee)
	h.Write(feeBuf[:])
	h.Write(right[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
