package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/bindelta/bindelta/cmd"
	"github.com/bindelta/bindelta/pkg/delta"
)

func fingerprintMain(_ *cobra.Command, arguments []string) {
	// Validate arguments.
	if len(arguments) != 1 {
		cmd.Fatal(errors.New("fingerprint requires a single file path"))
	}

	// Determine the block size. A zero value selects the default.
	blockSize := fingerprintConfiguration.blockSize
	if blockSize == 0 {
		blockSize = delta.DefaultBlockSize
	}

	// Load and fingerprint the file.
	data, err := os.ReadFile(arguments[0])
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to read file"))
	}
	blocks, err := delta.Fingerprint(data, blockSize)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to fingerprint file"))
	}

	// Print one line per block: offset, size, weak hash, strong hash.
	for _, block := range blocks {
		fmt.Printf("%d\t%d\t%08x\t%s\n", block.Offset, block.Size, block.Weak, block.Strong)
	}
}

var fingerprintCommand = &cobra.Command{
	Use:   "fingerprint <file>",
	Short: "Print the per-block fingerprints of a file",
	Run:   fingerprintMain,
}

var fingerprintConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// blockSize stores the value of the --block-size flag.
	blockSize uint64
}

func init() {
	// Bind flags to configuration. We manually add help to override the
	// default message, but Cobra still implements it automatically.
	flags := fingerprintCommand.Flags()
	flags.BoolVarP(&fingerprintConfiguration.help, "help", "h", false, "Show help information")
	flags.Uint64Var(&fingerprintConfiguration.blockSize, "block-size", delta.DefaultBlockSize, "Block size for fingerprinting (0 selects the default)")
}
