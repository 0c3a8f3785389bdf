package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bindelta/bindelta/pkg/bindelta"
)

func versionMain(_ *cobra.Command, _ []string) {
	fmt.Println(bindelta.Version)
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run:   versionMain,
}
