// Command ctrain-demo is the external, out-of-core demonstration front
// end for ctrain: it runs the genesis/step/verify scenarios and the XOR
// training scenario against the library, entirely outside the kernel
// packages themselves (CLI demos are explicitly out of
// scope for the core).
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	seedHex string
	verbose bool
	version = "dev" // set by build flags
)

var rootCmd = &cobra.Command{
	Use:     "ctrain-demo",
	Short:   "Demonstration CLI for the ctrain deterministic training kernel",
	Long:    `ctrain-demo exercises the ctrain library's genesis/step/verify Merkle chain and a small XOR network, entirely outside the kernel it drives.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&seedHex, "seed", "0x123456789abcdef0", "64-bit hex seed")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(genesisCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(trainXORCmd)
}

// Commands are defined in separate files:
// - genesisCmd in genesis.go
// - stepCmd in step.go
// - verifyCmd in verify.go
// - checkpointCmd in checkpoint.go
// - trainXORCmd in trainxor.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
