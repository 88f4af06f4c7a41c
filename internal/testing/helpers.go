package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// FastTimeouts returns the default polling bounds with one-millisecond intervals.
func FastTimeouts() *config.Timeouts {
	t := config.LoadTimeouts()
	t.HostUpAttempts = config.DefaultHostUpAttempts
	t.MaintenanceAttempts = config.DefaultMaintenanceAttempts
	t.HostUpInterval = time.Millisecond
	t.MaintenanceInterval = time.Millisecond
	return t
}

// NewContext builds a provisioning context whose waits never sleep and whose
// output is recorded.
func NewContext(t *testing.T, cfg *config.Config, client cloudapi.Client) (*provisioning.Context, *RecordingObserver) {
	t.Helper()
	obs := NewRecordingObserver()
	ctx := provisioning.NewContext(TestContext(t), cfg, client)
	ctx.Observer = obs
	ctx.Timeouts = FastTimeouts()
	ctx.Sleep = func(time.Duration) {}
	return ctx, obs
}
