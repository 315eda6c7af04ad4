package sparse

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
)

func TestCheckpointRoundTripSaveLoad(t *testing.T) {
	tr := newTree()
	require.NoError(t, tr.Update([]byte("a"), []byte("1")))
	require.NoError(t, tr.Update([]byte("b"), []byte("2")))

	keyHash := hashing.Sum256([]byte("a"))
	cps, err := Checkpoints(SchemeBalanced, tr.Root(), keyHash, tr.Lookup)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cps))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.True(t, cps.Equal(loaded))
}

func TestCheckpointGapRebuildMatchesFullWalk(t *testing.T) {
	tr := newTree()
	for _, k := range [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d"), []byte("e")} {
		require.NoError(t, tr.Update(k, append([]byte("value-"), k...)))
	}

	for _, scheme := range []CheckpointScheme{SchemeCompact, SchemeBalanced, SchemeFast} {
		scheme := scheme
		t.Run(scheme.Name, func(t *testing.T) {
			keyHash := hashing.Sum256([]byte("c"))

			full, err := Walk(tr.Root(), keyHash, tr.Lookup)
			require.NoError(t, err)

			cps, err := Checkpoints(scheme, tr.Root(), keyHash, tr.Lookup)
			require.NoError(t, err)

			rebuilt, err := RebuildGaps(context.Background(), cps, tr.Lookup)
			require.NoError(t, err)

			require.Equal(t, full, rebuilt)
		})
	}
}
