package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "publicid",
		Short:         "Public identifier tools",
		Long:          "Generate public identifiers in any style and validate identifiable config files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newStylesCmd())
	rootCmd.AddCommand(newCheckCmd())
	return rootCmd
}
