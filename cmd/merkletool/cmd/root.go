// Package cmd wires up the merkletool subcommands under a root cobra
// command, the way the broader Merkle/blockchain CLI tools in the example
// corpus structure their command trees.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "merkletool",
	Short: "Build, prove and verify Merkle trees from the command line",
	Long: `merkletool is a thin driver over the binary, sum and sparse Merkle
tree packages: build a tree from input, print its root, generate and
verify inclusion proofs, and update/delete keys in an on-disk sparse
tree.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(binaryCmd)
	rootCmd.AddCommand(sumCmd)
	rootCmd.AddCommand(sparseCmd)
}
