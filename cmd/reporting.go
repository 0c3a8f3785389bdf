// Package cmd provides shared failure reporting for bindelta's command
// line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Error reports a failure to standard error in the conventional
// program-name-prefixed format, colorized when standard error is a
// terminal.
func Error(err error) {
	fmt.Fprintln(color.Error, color.RedString("bindelta:"), err)
}

// Fatal reports a failure to standard error and then terminates the
// process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
