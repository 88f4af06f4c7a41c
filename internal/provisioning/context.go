package provisioning

import (
	"context"
	"time"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
)

// Context wraps all dependencies and state needed for a provisioning or teardown pass.
type Context struct {
	context.Context
	Config   *config.Config
	Ledger   *Ledger
	Client   cloudapi.Client
	Observer Observer
	Timeouts *config.Timeouts
	Metrics  *Metrics

	// Sleep replaces the interval wait of convergence polls. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// NewContext creates a new provisioning context with an empty ledger.
func NewContext(ctx context.Context, cfg *config.Config, client cloudapi.Client) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Ledger:   NewLedger(),
		Client:   client,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
		Metrics:  NewMetrics(),
	}
}

// HostUpWaiter returns the waiter used after adding a cluster's hosts.
func (c *Context) HostUpWaiter() Waiter {
	w := NewWaiter(c.Timeouts.HostUpAttempts, c.Timeouts.HostUpInterval)
	w.Sleep = c.Sleep
	return w
}

// MaintenanceWaiter returns the waiter used before deleting hosts and storage pools.
func (c *Context) MaintenanceWaiter() Waiter {
	w := NewWaiter(c.Timeouts.MaintenanceAttempts, c.Timeouts.MaintenanceInterval)
	w.Sleep = c.Sleep
	return w
}
