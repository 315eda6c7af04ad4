// Command merkletool is a small CLI front-end over the tree packages,
// replacing the teacher's cmd/test stub: it builds a binary tree from
// newline-delimited input, prints roots, and generates/verifies inclusion
// proofs, plus drives a LevelDB-backed sparse tree for update/delete/root.
package main

import (
	"fmt"
	"os"

	"github.com/fuellabs/merkle-go/cmd/merkletool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
