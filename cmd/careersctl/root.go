package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "careersctl",
		Short:        "Careers page operator tools",
		SilenceUsage: true,
	}
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newTokenCmd())
	return cmd
}
