package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dcdeploy/cmd/dcdeploy/handlers"
)

// Remove returns the remove command.
//
// The remove command deletes the resources recorded in a ledger written by deploy.
func Remove() *cobra.Command {
	var opts handlers.RemoveOptions

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the resources recorded in a deploy ledger",
		Long: `Remove deletes every resource recorded in a ledger, newest resource type
first: storage and hosts before clusters, clusters before pods, pods before
physical networks, and zones last.

Hosts and storage pools are put into maintenance before they are deleted.
A resource the API refuses to delete is reported and the pass continues.

The topology file supplies the management server endpoint and credentials.

Example:
  dcdeploy remove -i topology.yaml -r dc_entries_Mar_05_2024_14_30_00.yaml

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Remove(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "Path to the topology file (required)")
	cmd.Flags().StringVarP(&opts.LedgerPath, "remove", "r", "", "Path or s3:// URI of the ledger to remove (required)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("remove")

	return cmd
}
