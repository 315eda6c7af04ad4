package sum

import "github.com/fuellabs/merkle-go/pkg/merkle/hashing"

func toDigest(data []byte) (hashing.Digest, bool) {
	var d hashing.Digest
	if len(data) != hashing.Size {
		return d, false
	}
	copy(d[:], data)
	return d, true
}

// Verify checks a fee-binding inclusion proof for a leaf at proofIndex
// against root, its total fee, and numLeaves. It has the same climb
// structure as pkg/merkle/binary.Verify, carrying a running (fee, hash)
// pair instead of a bare hash.
func Verify(root hashing.Digest, totalFee uint64, proofSet *ProofSet, proofIndex, numLeaves uint64) bool {
	if proofIndex >= numLeaves {
		return false
	}
	if proofSet.Len() == 0 {
		return false
	}

	height := 0
	leaf, ok := proofSet.Get(height)
	if !ok {
		return false
	}
	fee := leaf.Fee
	sum := hashing.LeafSum(leaf.Fee, leaf.Data)
	height++

	stableEnd := proofIndex
	for {
		subtreeStartIndex := (proofIndex / (uint64(1) << uint(height))) * (uint64(1) << uint(height))
		subtreeEndIndex := subtreeStartIndex + (uint64(1) << uint(height)) - 1
		if subtreeEndIndex >= numLeaves {
			break
		}
		stableEnd = subtreeEndIndex

		if proofSet.Len() <= height {
			return false
		}
		elem, _ := proofSet.Get(height)
		siblingHash, ok := toDigest(elem.Data)
		if !ok {
			return false
		}

		if proofIndex-subtreeStartIndex < (uint64(1) << uint(height-1)) {
			sum = hashing.NodeSum(fee, sum, elem.Fee, siblingHash)
		} else {
			sum = hashing.NodeSum(elem.Fee, siblingHash, fee, sum)
		}
		fee += elem.Fee
		height++
	}

	if stableEnd != numLeaves-1 {
		if proofSet.Len() <= height {
			return false
		}
		elem, _ := proofSet.Get(height)
		siblingHash, ok := toDigest(elem.Data)
		if !ok {
			return false
		}
		sum = hashing.NodeSum(fee, sum, elem.Fee, siblingHash)
		fee += elem.Fee
		height++
	}

	for height < proofSet.Len() {
		elem, _ := proofSet.Get(height)
		siblingHash, ok := toDigest(elem.Data)
		if !ok {
			return false
		}
		sum = hashing.NodeSum(elem.Fee, siblingHash, fee, sum)
		fee += elem.Fee
		height++
	}

	return sum == root && fee == totalFee
}
