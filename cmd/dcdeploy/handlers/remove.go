package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/provisioning/destroy"
)

// ErrNotConfirmed is returned when a removal is declined or cannot be confirmed.
var ErrNotConfirmed = errors.New("removal not confirmed")

// TeardownRunner deletes the resources of a ledger snapshot.
type TeardownRunner interface {
	Teardown(ctx *provisioning.Context, snap provisioning.LedgerSnapshot) (*destroy.Result, error)
}

// newTeardown creates the teardown engine.
var newTeardown = func() TeardownRunner {
	return destroy.NewProvisioner()
}

// RemoveOptions holds the flags of the remove command.
type RemoveOptions struct {
	InputPath  string
	LedgerPath string
	Yes        bool
}

// Remove deletes every resource recorded in the ledger at opts.LedgerPath.
// The topology supplies the management server endpoint.
func Remove(ctx context.Context, opts RemoveOptions) error {
	if _, err := os.Stat(opts.InputPath); err != nil {
		return fmt.Errorf("topology file %s: %w", opts.InputPath, err)
	}

	cfg, err := loadConfig(opts.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load topology: %w", err)
	}

	store, err := openStore(opts.LedgerPath, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to open ledger store: %w", err)
	}
	doc, err := store.Load(ctx, opts.LedgerPath)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	snap := doc.Snapshot()
	if snap.IsEmpty() {
		fmt.Fprintf(output, "Ledger %s is empty, nothing to remove\n", opts.LedgerPath)
		return nil
	}

	if !opts.Yes {
		if !isInteractive() {
			return fmt.Errorf("%w: run with --yes in non-interactive sessions", ErrNotConfirmed)
		}
		ok, err := confirmRemoval(ctx, opts.LedgerPath, snap.Len())
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotConfirmed
		}
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	log.Printf("Removing %d resources recorded in %s", snap.Len(), opts.LedgerPath)

	result, err := newTeardown().Teardown(pCtx, snap)
	if result != nil {
		fmt.Fprint(output, renderRemoveSummary(opts.LedgerPath, result))
	}
	if err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	if result.Failed > 0 {
		return fmt.Errorf("remove incomplete: %d of %d resources could not be deleted",
			result.Failed, result.Failed+result.Deleted)
	}
	return nil
}
