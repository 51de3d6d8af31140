package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/substrate"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of substrate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "substrate version %s\n", strings.TrimSpace(substrate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
