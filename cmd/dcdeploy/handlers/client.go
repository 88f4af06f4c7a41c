// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/state"
)

const jobPollInterval = 2 * time.Second

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig reads and validates a topology file.
	loadConfig = config.LoadFile

	// newAPIClient creates the management server client.
	newAPIClient = newHTTPClient

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// openStore opens the ledger store for a directory or s3:// location.
	openStore = state.Open

	// isInteractive reports whether the user can answer a prompt.
	isInteractive = isInteractiveTTY

	// confirmRemoval asks the user to confirm a removal.
	confirmRemoval = promptRemoval

	// output receives the rendered summaries.
	output io.Writer = os.Stdout
)

// newHTTPClient builds the API client from the topology endpoint and the
// environment timeouts. Retries are counted in metrics.
func newHTTPClient(cfg *config.Config, timeouts *config.Timeouts, metrics *provisioning.Metrics) (cloudapi.Client, error) {
	ep, err := cfg.ResolveEndpoint()
	if err != nil {
		return nil, err
	}

	opts := []cloudapi.Option{
		cloudapi.WithRequestTimeout(timeouts.APIRequest),
		cloudapi.WithRateLimit(timeouts.APIRateLimit),
		cloudapi.WithRetry(timeouts.RetryMaxAttempts, timeouts.RetryInitialDelay),
		cloudapi.WithJobPolling(jobPollInterval, timeouts.AsyncJob),
		cloudapi.WithRetryHook(func(command string, _ int, _ error) {
			metrics.RecordAPIRetry(command)
		}),
	}
	if !ep.VerifySSL {
		opts = append(opts, cloudapi.WithInsecureSkipVerify())
	}

	return cloudapi.NewHTTPClient(ep.URL, ep.APIKey, ep.SecretKey, opts...), nil
}

// newContext creates a provisioning context wired to the API client.
func newContext(ctx context.Context, cfg *config.Config) (*provisioning.Context, error) {
	pCtx := newProvisioningContext(ctx, cfg, nil)
	client, err := newAPIClient(cfg, pCtx.Timeouts, pCtx.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	pCtx.Client = client
	return pCtx, nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
