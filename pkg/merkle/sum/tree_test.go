package sum

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/position"
	"github.com/fuellabs/merkle-go/pkg/merkle/storage"
)

func newTree() *Tree {
	return New(storage.NewMap[position.Position, Node]())
}

func TestEmptyTreeRootIsEmptyHashZeroFee(t *testing.T) {
	tr := newTree()
	root, fee, err := tr.Root()
	require.NoError(t, err)
	require.Equal(t, hashing.Empty(), root)
	require.Zero(t, fee)
}

func TestSingleLeafRootIsLeafSum(t *testing.T) {
	tr := newTree()
	require.NoError(t, tr.Push(7, []byte("DATA")))
	root, fee, err := tr.Root()
	require.NoError(t, err)
	require.Equal(t, hashing.LeafSum(7, []byte("DATA")), root)
	require.Equal(t, uint64(7), fee)
}

func TestRootFeeIsSumOfLeafFees(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7, 8, 13} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tr := newTree()
			var want uint64
			for i := 0; i < n; i++ {
				fee := uint64(i + 1)
				want += fee
				require.NoError(t, tr.Push(fee, []byte(fmt.Sprintf("leaf-%d", i))))
			}
			_, fee, err := tr.Root()
			require.NoError(t, err)
			require.Equal(t, want, fee)
		})
	}
}

func TestProveVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 15, 16, 17} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tr := newTree()
			for i := 0; i < n; i++ {
				require.NoError(t, tr.Push(uint64(i+1), []byte(fmt.Sprintf("leaf-%d", i))))
			}
			root, totalFee, err := tr.Root()
			require.NoError(t, err)

			for i := 0; i < n; i++ {
				proofRoot, proofFee, proofSet, err := tr.Prove(uint64(i))
				require.NoError(t, err)
				require.Equal(t, root, proofRoot)
				require.Equal(t, totalFee, proofFee)
				require.True(t, Verify(root, totalFee, proofSet, uint64(i), uint64(n)), "leaf %d of %d failed to verify", i, n)
			}
		})
	}
}

func TestVerifyRejectsWrongTotalFee(t *testing.T) {
	tr := newTree()
	for i := 0; i < 8; i++ {
		require.NoError(t, tr.Push(uint64(i+1), []byte(fmt.Sprintf("leaf-%d", i))))
	}
	root, totalFee, err := tr.Root()
	require.NoError(t, err)
	_, _, proofSet, err := tr.Prove(3)
	require.NoError(t, err)
	require.False(t, Verify(root, totalFee+1, proofSet, 3, 8))
}
