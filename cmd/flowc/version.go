package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at release build time via -ldflags; dev builds report "dev".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the flowc version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
