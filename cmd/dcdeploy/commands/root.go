// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the dcdeploy CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dcdeploy",
		Short:         "Provision data-center zones from a topology file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Remove())
	cmd.AddCommand(Version())

	return cmd
}
