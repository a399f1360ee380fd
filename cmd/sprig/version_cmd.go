package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in sprig's version
	VersionMajor = 0
	// VersionMinor is the minor number in sprig's version
	VersionMinor = 1
	// VersionPatch is the patch number in sprig's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sprig",
		Long:  `All software has versions. This is sprig's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sprig v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
