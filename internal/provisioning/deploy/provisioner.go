package deploy

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/provisioning/destroy"
	"github.com/imamik/dcdeploy/internal/state"
	"github.com/imamik/dcdeploy/internal/util/naming"
)

// Teardown removes the resources of a ledger snapshot.
type Teardown interface {
	Teardown(ctx *provisioning.Context, snap provisioning.LedgerSnapshot) (*destroy.Result, error)
}

// Outcome describes a finished run, successful or not.
type Outcome struct {
	RunID  string
	Zones  []CreatedZone
	Ledger provisioning.LedgerSnapshot

	// Location is where the ledger was persisted; empty when it was not.
	Location   string
	PersistErr error

	// RolledBack is set when a failed run tore down its resources.
	RolledBack bool
	Teardown   *destroy.Result
}

// Provisioner runs one deployment pass and rolls it back on failure.
type Provisioner struct {
	store    state.Store
	cleanup  bool
	teardown Teardown
	now      func() time.Time
	suffix   func() string
	runID    func() string
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithStore persists the ledger after the run.
func WithStore(store state.Store) Option {
	return func(p *Provisioner) { p.store = store }
}

// WithCleanup controls whether a failed run tears down what it created.
// The topology's cleanupOnFailure setting must allow it as well.
func WithCleanup(enabled bool) Option {
	return func(p *Provisioner) { p.cleanup = enabled }
}

// WithTeardown replaces the teardown engine used for rollback.
func WithTeardown(t Teardown) Option {
	return func(p *Provisioner) { p.teardown = t }
}

// WithClock replaces the clock used to stamp the persisted ledger.
func WithClock(now func() time.Time) Option {
	return func(p *Provisioner) { p.now = now }
}

// WithZoneSuffix replaces the random suffix used to rename conflicting zones.
func WithZoneSuffix(suffix func() string) Option {
	return func(p *Provisioner) { p.suffix = suffix }
}

// NewProvisioner creates a provisioner with rollback enabled and no store.
func NewProvisioner(opts ...Option) *Provisioner {
	p := &Provisioner{
		cleanup:  true,
		teardown: destroy.NewProvisioner(),
		now:      time.Now,
		suffix:   naming.RandomSuffix,
		runID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// phases returns the phases of a run in execution order.
func (p *Provisioner) phases(zones *ZonesPhase) []provisioning.Phase {
	return []provisioning.Phase{
		provisioning.NewValidationPhase(),
		NewGlobalConfigPhase(),
		zones,
		NewS3Phase(),
	}
}

// Run provisions ctx.Config. On failure the ledger built so far is torn
// down unless cleanup is disabled, and the original error is returned
// together with the outcome.
func (p *Provisioner) Run(ctx *provisioning.Context) (*Outcome, error) {
	zones := NewZonesPhase()
	zones.suffix = p.suffix

	runID := p.runID()
	ctx.Observer = ctx.Observer.WithFields(map[string]string{"run": runID})

	err := provisioning.RunPhases(ctx, p.phases(zones))
	out := &Outcome{
		RunID:  runID,
		Zones:  zones.Created(),
		Ledger: ctx.Ledger.Snapshot(),
	}

	if err == nil {
		p.persist(ctx, out)
		return out, nil
	}

	if !p.cleanup || !ctx.Config.ShouldCleanupOnFailure() {
		ctx.Observer.Printf("[Deploy] Cleanup disabled, leaving %d resources in place", out.Ledger.Len())
		p.persist(ctx, out)
		return out, err
	}

	if out.Ledger.IsEmpty() {
		return out, err
	}

	ctx.Observer.Printf("[Deploy] Deployment failed, removing %d created resources", out.Ledger.Len())
	result, tdErr := p.teardown.Teardown(ctx, out.Ledger)
	out.RolledBack = true
	out.Teardown = result
	if tdErr != nil || (result != nil && result.Failed > 0) {
		// Leftovers stay removable with the persisted ledger.
		p.persist(ctx, out)
	}
	if tdErr != nil {
		return out, errors.Join(err, fmt.Errorf("rollback failed: %w", tdErr))
	}
	return out, err
}

// persist saves the ledger. Failures are logged and kept on the outcome only.
func (p *Provisioner) persist(ctx *provisioning.Context, out *Outcome) {
	if p.store == nil {
		return
	}
	loc, err := p.store.Save(ctx, state.NewDocument(out.RunID, out.Ledger, p.now()))
	if err != nil {
		out.PersistErr = err
		ctx.Observer.Printf("[Deploy] WARNING: failed to persist ledger: %v", err)
		return
	}
	out.Location = loc
	ctx.Observer.Printf("[Deploy] Ledger written to %s", loc)
}
