package main

import (
	"os"

	"github.com/dustin/go-humanize"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/bindelta/bindelta/cmd"
	"github.com/bindelta/bindelta/pkg/delta"
	"github.com/bindelta/bindelta/pkg/encoding"
	"github.com/bindelta/bindelta/pkg/filesystem"
)

func applyPatchMain(_ *cobra.Command, arguments []string) {
	// Validate arguments.
	if len(arguments) != 3 {
		cmd.Fatal(errors.New("apply-patch requires base, patch, and output paths"))
	}
	basePath, patchPath, outputPath := arguments[0], arguments[1], arguments[2]

	// Create a logger for this operation.
	logger := rootLogger.Sublogger("apply")

	// Load the base and the patch.
	base, err := os.ReadFile(basePath)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to read base"))
	}
	patch, err := encoding.LoadPatch(patchPath)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to load patch"))
	}
	logger.Debugf(
		"base is %s, patch carries %s of residual data",
		humanize.Bytes(uint64(len(base))), humanize.Bytes(uint64(len(patch.Data))),
	)

	// Apply the patch.
	output, err := delta.ApplyPatch(base, patch)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to apply patch"))
	}

	// Write the reconstructed output.
	if err := filesystem.WriteFileAtomic(outputPath, output, 0644); err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to write output"))
	}
	logger.Infof("reconstructed %s", humanize.Bytes(uint64(len(output))))
}

var applyPatchCommand = &cobra.Command{
	Use:   "apply-patch <base> <patch> <output>",
	Short: "Apply a patch to the base file to reconstruct the other file",
	Run:   applyPatchMain,
}

var applyPatchConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
}

func init() {
	// Bind flags to configuration. We manually add help to override the
	// default message, but Cobra still implements it automatically.
	flags := applyPatchCommand.Flags()
	flags.BoolVarP(&applyPatchConfiguration.help, "help", "h", false, "Show help information")
}
