package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/sparse"
	"github.com/fuellabs/merkle-go/pkg/merkle/storage"
)

var sparseCmd = &cobra.Command{
	Use:   "sparse",
	Short: "Update, delete and read a LevelDB-backed sparse Merkle tree",
}

var sparseDBPath string

// rootMetaKey is the LevelDB key merkletool persists the sparse tree's
// current root under; its length (4 bytes) can never collide with a
// 32-byte digest key, so it safely shares the keyspace with the node store.
var rootMetaKey = []byte("root")

func digestCodec() storage.Codec[hashing.Digest] {
	return storage.Codec[hashing.Digest]{
		Encode: func(d hashing.Digest) []byte { return d.Bytes() },
		Decode: func(b []byte) (hashing.Digest, error) {
			var d hashing.Digest
			if err := d.UnmarshalBinary(b); err != nil {
				return hashing.Digest{}, err
			}
			return d, nil
		},
	}
}

func nodeCodec() storage.Codec[sparse.Node] {
	return storage.Codec[sparse.Node]{
		Encode: func(n sparse.Node) []byte { return n.Encode() },
		Decode: sparse.DecodeNode,
	}
}

// openSparseTree opens the LevelDB database at path, wraps it as the node
// and key-index stores a sparse.Tree needs, and restores the tree's root
// from the db's persisted root marker (zero_hash if none was ever written).
func openSparseTree(path string) (*sparse.Tree, *leveldb.DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}

	nodes := storage.NewLevelDB[hashing.Digest, sparse.Node](db, digestCodec(), nodeCodec())
	keys := storage.NewLevelDB[hashing.Digest, hashing.Digest](db, digestCodec(), digestCodec())
	tr := sparse.New(nodes, keys)

	if raw, err := db.Get(rootMetaKey, nil); err == nil {
		var root hashing.Digest
		if err := root.UnmarshalBinary(raw); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("decode persisted root: %w", err)
		}
		tr.SetRoot(root)
	} else if !errors.Is(err, leveldb.ErrNotFound) {
		db.Close()
		return nil, nil, fmt.Errorf("read persisted root: %w", err)
	}

	return tr, db, nil
}

func persistRoot(db *leveldb.DB, tr *sparse.Tree) error {
	root := tr.Root()
	if err := db.Put(rootMetaKey, root.Bytes(), nil); err != nil {
		return fmt.Errorf("persist root: %w", err)
	}
	return nil
}

var sparseUpdateCmd = &cobra.Command{
	Use:   "update <key> <data>",
	Short: "Update the leaf for a UTF-8 key with UTF-8 data and print the new root",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, db, err := openSparseTree(sparseDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := tr.Update([]byte(args[0]), []byte(args[1])); err != nil {
			log.Error().Err(err).Str("key", args[0]).Msg("sparse update failed")
			return fmt.Errorf("update: %w", err)
		}
		if err := persistRoot(db, tr); err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(tr.Root().Bytes()))
		return nil
	},
}

var sparseDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete the leaf for a UTF-8 key and print the resulting root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, db, err := openSparseTree(sparseDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := tr.Delete([]byte(args[0])); err != nil {
			log.Error().Err(err).Str("key", args[0]).Msg("sparse delete failed")
			return fmt.Errorf("delete: %w", err)
		}
		if err := persistRoot(db, tr); err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(tr.Root().Bytes()))
		return nil
	},
}

var sparseRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the sparse tree's current root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, db, err := openSparseTree(sparseDBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		fmt.Println(hex.EncodeToString(tr.Root().Bytes()))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{sparseUpdateCmd, sparseDeleteCmd, sparseRootCmd} {
		c.Flags().StringVar(&sparseDBPath, "db", "", "path to the LevelDB database directory")
		_ = c.MarkFlagRequired("db")
	}
	sparseCmd.AddCommand(sparseUpdateCmd, sparseDeleteCmd, sparseRootCmd)
}
