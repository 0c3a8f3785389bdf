package main

import (
	"os"

	"github.com/dustin/go-humanize"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/bindelta/bindelta/cmd"
	"github.com/bindelta/bindelta/pkg/delta"
	"github.com/bindelta/bindelta/pkg/encoding"
)

func computePatchMain(_ *cobra.Command, arguments []string) {
	// Validate arguments.
	if len(arguments) != 3 {
		cmd.Fatal(errors.New("compute-patch requires base, other, and patch paths"))
	}
	basePath, otherPath, patchPath := arguments[0], arguments[1], arguments[2]

	// Determine the block size. A zero value selects the default.
	blockSize := computePatchConfiguration.blockSize
	if blockSize == 0 {
		blockSize = delta.DefaultBlockSize
	}

	// Create a logger for this operation.
	logger := rootLogger.Sublogger("compute")

	// Load both inputs.
	base, err := os.ReadFile(basePath)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to read base"))
	}
	other, err := os.ReadFile(otherPath)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to read other"))
	}
	logger.Debugf(
		"base is %s, other is %s, block size is %d",
		humanize.Bytes(uint64(len(base))), humanize.Bytes(uint64(len(other))), blockSize,
	)

	// Fingerprint the other sequence and diff against the base.
	blocks, err := delta.Fingerprint(other, blockSize)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to fingerprint other"))
	}
	commands, err := delta.Diff(base, blocks, blockSize)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to compute diff"))
	}
	if commands.Synchronized() && len(base) == len(other) {
		logger.Info("base and other are identical")
	} else {
		logger.Infof(
			"%s reusable from base, %s residual",
			humanize.Bytes(commands.NeedBytesFromBase()),
			humanize.Bytes(commands.NeedBytesFromOther()),
		)
	}

	// Build the patch and write it to disk.
	patch := delta.BuildPatch(other, commands)
	if err := encoding.SavePatch(patchPath, patch); err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to save patch"))
	}
	logger.Infof(
		"patch carries %s of residual data in %d base and %d residual commands",
		humanize.Bytes(uint64(len(patch.Data))), len(patch.Base), len(patch.Other),
	)
}

var computePatchCommand = &cobra.Command{
	Use:   "compute-patch <base> <other> <patch>",
	Short: "Compute a patch that reconstructs the other file from the base file",
	Run:   computePatchMain,
}

var computePatchConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// blockSize stores the value of the --block-size flag.
	blockSize uint64
}

func init() {
	// Bind flags to configuration. We manually add help to override the
	// default message, but Cobra still implements it automatically.
	flags := computePatchCommand.Flags()
	flags.BoolVarP(&computePatchConfiguration.help, "help", "h", false, "Show help information")
	flags.Uint64Var(&computePatchConfiguration.blockSize, "block-size", delta.DefaultBlockSize, "Block size for fingerprinting and matching (0 selects the default)")
}
