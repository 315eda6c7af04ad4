package binary

import "github.com/fuellabs/merkle-go/pkg/merkle/hashing"

func toDigest(data []byte) (hashing.Digest, bool) {
	var d hashing.Digest
	if len(data) != hashing.Size {
		return d, false
	}
	copy(d[:], data)
	return d, true
}

// Verify checks an inclusion proof for a leaf at proofIndex against root and
// numLeaves, with no access to the tree that produced it. proofSet[0] is
// the leaf's raw data; every later element is a 32-byte sibling digest.
//
// The climb mirrors the unbalanced right-spine shape the tree itself
// builds: it advances height by height from the leaf, folding in a sibling
// for every complete subtree boundary it crosses, patches in one extra
// sibling if the leaf's final subtree isn't the tree's rightmost, then
// absorbs any remaining proof elements moving strictly up the right spine.
func Verify(root hashing.Digest, proofSet *ProofSet, proofIndex, numLeaves uint64) bool {
	if proofIndex >= numLeaves {
		return false
	}
	if proofSet.Len() == 0 {
		return false
	}

	height := 0
	leafData, ok := proofSet.Get(height)
	if !ok {
		return false
	}
	sum := hashing.Leaf(leafData)
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
		proofData, _ := proofSet.Get(height)
		sibling, ok := toDigest(proofData)
		if !ok {
			return false
		}

		if proofIndex-subtreeStartIndex < (uint64(1) << uint(height-1)) {
			sum = hashing.Node(sum, sibling)
		} else {
			sum = hashing.Node(sibling, sum)
		}
		height++
	}

	if stableEnd != numLeaves-1 {
		if proofSet.Len() <= height {
			return false
		}
		proofData, _ := proofSet.Get(height)
		sibling, ok := toDigest(proofData)
		if !ok {
			return false
		}
		sum = hashing.Node(sum, sibling)
		height++
	}

	for height < proofSet.Len() {
		proofData, _ := proofSet.Get(height)
		sibling, ok := toDigest(proofData)
		if !ok {
			return false
		}
		sum = hashing.Node(sibling, sum)
		height++
	}

	return sum == root
}
