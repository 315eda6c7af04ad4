package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fuellabs/merkle-go/pkg/merkle/binary"
	"github.com/fuellabs/merkle-go/pkg/merkle/hashing"
	"github.com/fuellabs/merkle-go/pkg/merkle/position"
	"github.com/fuellabs/merkle-go/pkg/merkle/storage"
)

var binaryCmd = &cobra.Command{
	Use:   "binary",
	Short: "Build, prove and verify a binary (RFC 6962) Merkle tree",
}

var binaryInput string

func newBinaryTreeFromInput(path string) (*binary.Tree, [][]byte, error) {
	leaves, err := readLeaves(path)
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewMap[position.Position, hashing.Digest]()
	tr := binary.New(store)
	for i, leaf := range leaves {
		if err := tr.Push(leaf); err != nil {
			return nil, nil, fmt.Errorf("push leaf %d: %w", i, err)
		}
	}
	log.Debug().Int("leaves", len(leaves)).Msg("built binary tree")
	return tr, leaves, nil
}

var binaryBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a binary tree from newline-delimited leaves and print its root",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, _, err := newBinaryTreeFromInput(binaryInput)
		if err != nil {
			return err
		}
		root, err := tr.Root()
		if err != nil {
			return fmt.Errorf("compute root: %w", err)
		}
		fmt.Println(hex.EncodeToString(root.Bytes()))
		return nil
	},
}

var binaryProveIndex uint64

var binaryProveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Build a binary tree and print an inclusion proof for --index",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, _, err := newBinaryTreeFromInput(binaryInput)
		if err != nil {
			return err
		}
		root, proofSet, err := tr.Prove(binaryProveIndex)
		if err != nil {
			return fmt.Errorf("prove: %w", err)
		}
		fmt.Printf("root=%s\n", hex.EncodeToString(root.Bytes()))
		fmt.Printf("num_leaves=%d\n", tr.LeavesCount())
		fmt.Printf("index=%d\n", binaryProveIndex)
		for i := 0; i < proofSet.Len(); i++ {
			elem, _ := proofSet.Get(i)
			fmt.Printf("proof[%d]=%s\n", i, hex.EncodeToString(elem))
		}
		return nil
	},
}

var (
	binaryVerifyRoot      string
	binaryVerifyIndex     uint64
	binaryVerifyNumLeaves uint64
	binaryVerifyProof     []string
)

var binaryVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a binary inclusion proof with no tree state",
	RunE: func(cmd *cobra.Command, args []string) error {
		rootBytes, err := hex.DecodeString(strings.TrimSpace(binaryVerifyRoot))
		if err != nil || len(rootBytes) != hashing.Size {
			return fmt.Errorf("--root must be a %d-byte hex digest", hashing.Size)
		}
		var root hashing.Digest
		copy(root[:], rootBytes)

		proofSet := binary.NewProofSet()
		for i, p := range binaryVerifyProof {
			raw, err := hex.DecodeString(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("--proof[%d]: %w", i, err)
			}
			proofSet.Push(raw)
		}

		ok := binary.Verify(root, proofSet, binaryVerifyIndex, binaryVerifyNumLeaves)
		fmt.Println(strconv.FormatBool(ok))
		if !ok {
			return fmt.Errorf("proof did not verify")
		}
		return nil
	},
}

func init() {
	binaryBuildCmd.Flags().StringVarP(&binaryInput, "input", "i", "-", "file of newline-delimited leaves, or - for stdin")
	binaryProveCmd.Flags().StringVarP(&binaryInput, "input", "i", "-", "file of newline-delimited leaves, or - for stdin")
	binaryProveCmd.Flags().Uint64Var(&binaryProveIndex, "index", 0, "leaf index to prove")

	binaryVerifyCmd.Flags().StringVar(&binaryVerifyRoot, "root", "", "hex-encoded root digest")
	binaryVerifyCmd.Flags().Uint64Var(&binaryVerifyIndex, "index", 0, "proved leaf index")
	binaryVerifyCmd.Flags().Uint64Var(&binaryVerifyNumLeaves, "leaves", 0, "total number of leaves")
	binaryVerifyCmd.Flags().StringArrayVar(&binaryVerifyProof, "proof", nil, "hex-encoded proof element, repeatable; element 0 is the raw leaf")
	_ = binaryVerifyCmd.MarkFlagRequired("root")
	_ = binaryVerifyCmd.MarkFlagRequired("leaves")

	binaryCmd.AddCommand(binaryBuildCmd, binaryProveCmd, binaryVerifyCmd)
}
