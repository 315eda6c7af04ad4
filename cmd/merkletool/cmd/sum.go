package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fuellabs/merkle-go/pkg/merkle/position"
	"github.com/fuellabs/merkle-go/pkg/merkle/storage"
	"github.com/fuellabs/merkle-go/pkg/merkle/sum"
)

var sumCmd = &cobra.Command{
	Use:   "sum",
	Short: "Build and prove a fee-carrying sum Merkle tree",
}

var sumInput string

// parseFeeLine splits a "fee:data" input line into its fee and data parts.
func parseFeeLine(line string) (uint64, []byte, error) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return 0, nil, fmt.Errorf("expected \"fee:data\", got %q", line)
	}
	fee, err := strconv.ParseUint(line[:idx], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("parse fee in %q: %w", line, err)
	}
	return fee, []byte(line[idx+1:]), nil
}

func newSumTreeFromInput(path string) (*sum.Tree, error) {
	lines, err := readLeaves(path)
	if err != nil {
		return nil, err
	}
	store := storage.NewMap[position.Position, sum.Node]()
	tr := sum.New(store)
	for i, line := range lines {
		fee, data, err := parseFeeLine(string(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if err := tr.Push(fee, data); err != nil {
			return nil, fmt.Errorf("push leaf %d: %w", i, err)
		}
	}
	log.Debug().Int("leaves", len(lines)).Msg("built sum tree")
	return tr, nil
}

var sumBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a sum tree from newline-delimited \"fee:data\" leaves and print its root and total fee",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newSumTreeFromInput(sumInput)
		if err != nil {
			return err
		}
		root, totalFee, err := tr.Root()
		if err != nil {
			return fmt.Errorf("compute root: %w", err)
		}
		fmt.Printf("root=%s\n", hex.EncodeToString(root.Bytes()))
		fmt.Printf("total_fee=%d\n", totalFee)
		return nil
	},
}

var sumProveIndex uint64

var sumProveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Build a sum tree and print an inclusion proof for --index",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newSumTreeFromInput(sumInput)
		if err != nil {
			return err
		}
		root, totalFee, proofSet, err := tr.Prove(sumProveIndex)
		if err != nil {
			return fmt.Errorf("prove: %w", err)
		}
		fmt.Printf("root=%s\n", hex.EncodeToString(root.Bytes()))
		fmt.Printf("total_fee=%d\n", totalFee)
		fmt.Printf("num_leaves=%d\n", tr.LeavesCount())
		fmt.Printf("index=%d\n", sumProveIndex)
		for i := 0; i < proofSet.Len(); i++ {
			elem, _ := proofSet.Get(i)
			fmt.Printf("proof[%d]=%d:%s\n", i, elem.Fee, hex.EncodeToString(elem.Data))
		}
		return nil
	},
}

func init() {
	sumBuildCmd.Flags().StringVarP(&sumInput, "input", "i", "-", "file of newline-delimited \"fee:data\" leaves, or - for stdin")
	sumProveCmd.Flags().StringVarP(&sumInput, "input", "i", "-", "file of newline-delimited \"fee:data\" leaves, or - for stdin")
	sumProveCmd.Flags().Uint64Var(&sumProveIndex, "index", 0, "leaf index to prove")

	sumCmd.AddCommand(sumBuildCmd, sumProveCmd)
}
