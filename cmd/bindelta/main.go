package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/bindelta/bindelta/cmd"
	"github.com/bindelta/bindelta/pkg/logging"
)

// rootLogger is the logger used by all subcommands. It is configured by the
// root command's persistent pre-run based on the --log-level flag.
var rootLogger *logging.Logger

func rootPreRun(_ *cobra.Command, _ []string) {
	// Configure the logger. An invalid level name is a usage error.
	level, ok := logging.NameToLevel(rootConfiguration.logLevel)
	if !ok {
		cmd.Fatal(errors.Errorf("unknown log level: %s", rootConfiguration.logLevel))
	}
	rootLogger = logging.NewLogger(level)
}

func rootMain(command *cobra.Command, _ []string) {
	// If no subcommand was given, then print help information and bail.
	command.Help()
}

var rootCommand = &cobra.Command{
	Use:              "bindelta",
	Short:            "Bindelta computes and applies compact binary patches between files.",
	PersistentPreRun: rootPreRun,
	Run:              rootMain,
}

var rootConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// logLevel stores the value of the --log-level flag.
	logLevel string
}

func init() {
	// Bind flags to configuration. We manually add help to override the
	// default message, but Cobra still implements it automatically.
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	persistent := rootCommand.PersistentFlags()
	persistent.StringVar(&rootConfiguration.logLevel, "log-level", "warn", "Set the log level (disabled, error, warn, info, debug)")

	// Disable Cobra's command sorting behavior. By default, it sorts
	// commands alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		computePatchCommand,
		applyPatchCommand,
		fingerprintCommand,
		versionCommand,
	)
}

func main() {
	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
