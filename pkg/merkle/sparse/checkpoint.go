package sparse

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
)

// CheckpointScheme fixes the set of depths (0 = the root itself,
// Depth-1 = adjacent to the leaf) at which a checkpointed spine persists a
// node hash to durable storage. Levels between two checkpoints are never
// written; they are rebuilt on demand by re-descending from the nearest
// stored checkpoint.
type CheckpointScheme struct {
	Name   string
	Levels []int
}

func levelsWithStride(stride int) []int {
	levels := make([]int, 0, Depth/stride+1)
	for d := 0; d < Depth; d += stride {
		levels = append(levels, d)
	}
	return levels
}

// SchemeCompact checkpoints every 32nd level: the smallest persisted
// footprint and the longest gaps between checkpoints.
var SchemeCompact = CheckpointScheme{Name: "compact", Levels: levelsWithStride(32)}

// SchemeBalanced checkpoints every 16th level.
var SchemeBalanced = CheckpointScheme{Name: "balanced", Levels: levelsWithStride(16)}

// SchemeFast checkpoints every 8th level: the largest persisted footprint
// and the shortest gaps between checkpoints.
var SchemeFast = CheckpointScheme{Name: "fast", Levels: levelsWithStride(8)}

// Checkpoint is one persisted (depth, hash) pair along a single key's
// spine.
type Checkpoint struct {
	Depth int            `cbor:"depth"`
	Hash  hashing.Digest `cbor:"hash"`
}

// CheckpointSet is a whole key's spine, reduced to the depths a scheme
// keeps.
type CheckpointSet struct {
	Scheme      string       `cbor:"scheme"`
	KeyHash     hashing.Digest `cbor:"key_hash"`
	Checkpoints []Checkpoint `cbor:"checkpoints"`
}

// Checkpoints reduces a full root-to-leaf walk for keyHash to the subset
// of depths scheme keeps.
func Checkpoints(scheme CheckpointScheme, root, keyHash hashing.Digest, lookup Lookup) (CheckpointSet, error) {
	steps, err := Walk(root, keyHash, lookup)
	if err != nil {
		return CheckpointSet{}, err
	}
	set := CheckpointSet{Scheme: scheme.Name, KeyHash: keyHash}
	for _, d := range scheme.Levels {
		set.Checkpoints = append(set.Checkpoints, Checkpoint{Depth: d, Hash: steps[d].Current})
	}
	return set, nil
}

// Save writes cps to w as CBOR.
func Save(w io.Writer, cps CheckpointSet) error {
	enc := cbor.NewEncoder(w)
	if err := enc.Encode(cps); err != nil {
		return fmt.Errorf("sparse.Save: %w", err)
	}
	return nil
}

// Load reads a CheckpointSet previously written by Save.
func Load(r io.Reader) (CheckpointSet, error) {
	var cps CheckpointSet
	dec := cbor.NewDecoder(r)
	if err := dec.Decode(&cps); err != nil {
		return CheckpointSet{}, fmt.Errorf("sparse.Load: %w", err)
	}
	return cps, nil
}

// RebuildGaps reconstructs the full root-to-leaf sibling sequence for
// cps.KeyHash from its sparse checkpoints, re-descending each independent
// gap segment (the span between two consecutive checkpoints, or between
// the last checkpoint and the leaf) concurrently through an errgroup-backed
// worker pool. Each segment's descent runs from its checkpoint all the way
// to the leaf and keeps only the steps before the next checkpoint, so a
// scheme with more checkpoints costs more lookups in total. The first
// segment's failure cancels the rest via ctx and is returned to the caller;
// no partial result is returned on error.
func RebuildGaps(ctx context.Context, cps CheckpointSet, lookup Lookup) ([]PathStep, error) {
	log := zerolog.Ctx(ctx)
	if len(cps.Checkpoints) == 0 {
		return nil, fmt.Errorf("sparse.RebuildGaps: empty checkpoint set")
	}

	levels := make([]int, len(cps.Checkpoints))
	hashes := make([]hashing.Digest, len(cps.Checkpoints))
	for i, c := range cps.Checkpoints {
		levels[i] = c.Depth
		hashes[i] = c.Hash
	}
	// segment boundaries: one segment per checkpoint, spanning from its
	// own depth up to (but not including) the next checkpoint's depth,
	// plus a final segment from the last checkpoint down to the leaf.
	boundaries := append(append([]int(nil), levels[1:]...), Depth)

	segments := make([][]PathStep, len(levels))
	g, gctx := errgroup.WithContext(ctx)
	for i := range levels {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			end := boundaries[i]
			log.Debug().
				Str("key_hash", fmt.Sprintf("%x", cps.KeyHash.Bytes())).
				Int("segment", i).
				Int("from_depth", levels[i]).
				Int("to_depth", end).
				Msg("rebuilding checkpoint gap segment")
			segSteps, err := WalkFrom(levels[i], hashes[i], cps.KeyHash, lookup)
			if err != nil {
				log.Error().
					Err(err).
					Int("segment", i).
					Int("from_depth", levels[i]).
					Msg("checkpoint gap segment rebuild failed")
				return err
			}
			segments[i] = segSteps[:end-levels[i]]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sparse.RebuildGaps: %w", err)
	}

	full := make([]PathStep, 0, Depth)
	for _, seg := range segments {
		full = append(full, seg...)
	}
	return full, nil
}

// Equal reports whether two checkpoint sets agree on every field, used by
// tests to compare a set against its Save/Load round trip.
func (c CheckpointSet) Equal(other CheckpointSet) bool {
	var a, b bytes.Buffer
	if Save(&a, c) != nil || Save(&b, other) != nil {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}
