// Package config collects the tree-wide constants and backend selection
// values in one place. No other package in this module imports it: the CLI
// and the test suites build their stores and pick checkpoint schemes
// directly.
package config

import "github.com/fuellabs/merkle-go/pkg/merkle/sparse"

// SparseDepth is the fixed height of every sparse Merkle tree: one level
// per bit of a 32-byte key.
const SparseDepth = sparse.Depth

// Backend selects which Storage implementation a tree is built against.
type Backend string

const (
	// BackendMemory uses the in-memory map-backed store; the default for
	// tests and short-lived CLI invocations.
	BackendMemory Backend = "memory"
	// BackendLevelDB uses the on-disk LevelDB-backed store.
	BackendLevelDB Backend = "leveldb"
)

// DefaultBackend names the in-memory backend as the default choice; no code
// in this module reads it.
const DefaultBackend = BackendMemory

// DefaultCheckpointScheme is the balanced preset, between the compact and
// fast presets in persisted footprint. sparse.Checkpoints always takes its
// scheme as an argument and does not read this value.
var DefaultCheckpointScheme = sparse.SchemeBalanced
