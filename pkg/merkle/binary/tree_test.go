package binary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/position"
	"github.com/fuellabs/merkle-go/pkg/merkle/storage"
)

func newTree() *Tree {
	return New(storage.NewMap[position.Position, hashing.Digest]())
}

func leafData(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte(fmt.Sprintf("leaf-%d", i))
	}
	return out
}

func TestEmptyTreeRootIsEmptyHash(t *testing.T) {
	tr := newTree()
	root, err := tr.Root()
	require.NoError(t, err)
	require.Equal(t, hashing.Empty(), root)
}

func TestSingleLeafRootIsLeafHash(t *testing.T) {
	tr := newTree()
	require.NoError(t, tr.Push([]byte("DATA")))
	root, err := tr.Root()
	require.NoError(t, err)
	require.Equal(t, hashing.Leaf([]byte("DATA")), root)
}

func TestRootMatchesManualFoldForVariousLeafCounts(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 13} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tr := newTree()
			leaves := leafData(n)
			for _, l := range leaves {
				require.NoError(t, tr.Push(l))
			}
			got, err := tr.Root()
			require.NoError(t, err)
			require.Equal(t, manualRoot(leaves), got)
		})
	}
}

// manualRoot computes the same unbalanced-right-spine root directly from a
// leaf slice, independent of Tree's internal stack bookkeeping.
func manualRoot(leaves [][]byte) hashing.Digest {
	if len(leaves) == 0 {
		return hashing.Empty()
	}
	nodes := make([]hashing.Digest, len(leaves))
	for i, l := range leaves {
		nodes[i] = hashing.Leaf(l)
	}
	return manualFold(nodes)
}

func manualFold(nodes []hashing.Digest) hashing.Digest {
	if len(nodes) == 1 {
		return nodes[0]
	}
	split := 1
	for split*2 < len(nodes) {
		split *= 2
	}
	left := manualFold(nodes[:split])
	right := manualFold(nodes[split:])
	return hashing.Node(left, right)
}

func TestProveVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 15, 16, 17} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tr := newTree()
			leaves := leafData(n)
			for _, l := range leaves {
				require.NoError(t, tr.Push(l))
			}
			root, err := tr.Root()
			require.NoError(t, err)

			for i := 0; i < n; i++ {
				proofRoot, proofSet, err := tr.Prove(uint64(i))
				require.NoError(t, err)
				require.Equal(t, root, proofRoot)
				require.True(t, Verify(root, proofSet, uint64(i), uint64(n)), "leaf %d of %d failed to verify", i, n)
			}
		})
	}
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	tr := newTree()
	leaves := leafData(8)
	for _, l := range leaves {
		require.NoError(t, tr.Push(l))
	}
	root, err := tr.Root()
	require.NoError(t, err)

	root2, proofSet, err := tr.Prove(3)
	require.NoError(t, err)
	require.Equal(t, root, root2)
	require.True(t, Verify(root, proofSet, 3, 8))

	tampered := NewProofSet()
	tampered.Push([]byte("not-the-leaf"))
	for i := 1; i < proofSet.Len(); i++ {
		data, _ := proofSet.Get(i)
		tampered.Push(data)
	}
	require.False(t, Verify(root, tampered, 3, 8))
}

func TestVerifyRejectsOutOfRangeIndex(t *testing.T) {
	tr := newTree()
	require.NoError(t, tr.Push([]byte("only")))
	root, err := tr.Root()
	require.NoError(t, err)
	_, proofSet, err := tr.Prove(0)
	require.NoError(t, err)
	require.False(t, Verify(root, proofSet, 1, 1))
}

func TestProveRejectsOutOfRangeIndex(t *testing.T) {
	tr := newTree()
	require.NoError(t, tr.Push([]byte("only")))
	_, _, err := tr.Prove(5)
	require.Error(t, err)
}
