package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/provisioning/deploy"
)

// DeployRunner runs one deployment pass.
type DeployRunner interface {
	Run(ctx *provisioning.Context) (*deploy.Outcome, error)
}

// newDeployRunner creates the deploy provisioner.
var newDeployRunner = func(opts ...deploy.Option) DeployRunner {
	return deploy.NewProvisioner(opts...)
}

// DeployOptions holds the flags of the deploy command.
type DeployOptions struct {
	InputPath   string
	StateDir    string
	StateURI    string
	NoCleanup   bool
	MetricsFile string
}

// stateLocation returns where the ledger is written.
func (o DeployOptions) stateLocation() string {
	if o.StateURI != "" {
		return o.StateURI
	}
	if o.StateDir != "" {
		return o.StateDir
	}
	return "."
}

// Deploy provisions the topology in opts.InputPath and persists the ledger.
//
// A failed run is rolled back unless cleanup is disabled by flag or topology.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadConfig(opts.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load topology: %w", err)
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	store, err := openStore(opts.stateLocation(), cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to open ledger store: %w", err)
	}

	log.Printf("Deploying %d zones from %s", len(cfg.Zones), opts.InputPath)

	runner := newDeployRunner(
		deploy.WithStore(store),
		deploy.WithCleanup(!opts.NoCleanup),
	)
	out, runErr := runner.Run(pCtx)

	if opts.MetricsFile != "" {
		if err := pCtx.Metrics.WriteTextfile(opts.MetricsFile); err != nil {
			log.Printf("Warning: failed to write metrics to %s: %v", opts.MetricsFile, err)
		}
	}

	if out != nil {
		fmt.Fprint(output, renderDeploySummary(out, runErr))
	}

	if runErr != nil {
		return fmt.Errorf("deploy failed: %w", runErr)
	}
	return nil
}
