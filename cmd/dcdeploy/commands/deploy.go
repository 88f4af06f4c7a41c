package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dcdeploy/cmd/dcdeploy/handlers"
)

// Deploy returns the deploy command.
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision every zone of a topology file",
		Long: `Deploy creates the zones described in a topology file: physical networks,
traffic types, network service providers, pods, IP ranges, clusters, hosts,
primary and secondary storage.

Every created resource is recorded in a ledger. The ledger is written to
--state-dir (default: current directory) or to an s3:// URI given with
--state-uri, and is the input of "dcdeploy remove".

If any step fails, the resources created so far are removed again in reverse
order, unless --no-cleanup is set or the topology sets cleanupOnFailure: false.

Example:
  dcdeploy deploy -i topology.yaml --state-dir ./ledgers`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "Path to the topology file (required)")
	cmd.Flags().StringVar(&opts.StateDir, "state-dir", ".", "Directory the ledger is written to")
	cmd.Flags().StringVar(&opts.StateURI, "state-uri", "", "s3:// location the ledger is written to")
	cmd.Flags().BoolVar(&opts.NoCleanup, "no-cleanup", false, "Keep created resources when the deployment fails")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	_ = cmd.MarkFlagRequired("input")
	cmd.MarkFlagsMutuallyExclusive("state-dir", "state-uri")

	return cmd
}
