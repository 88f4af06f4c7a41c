package deploy

import (
	"fmt"

	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
)

// GlobalConfigPhase applies global configuration overrides before any zone exists.
type GlobalConfigPhase struct{}

// NewGlobalConfigPhase creates a new global configuration phase.
func NewGlobalConfigPhase() *GlobalConfigPhase {
	return &GlobalConfigPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *GlobalConfigPhase) Name() string {
	return "global-config"
}

// Provision implements the provisioning.Phase interface.
func (p *GlobalConfigPhase) Provision(ctx *provisioning.Context) error {
	if len(ctx.Config.GlobalConfig) == 0 {
		ctx.Observer.Printf("[GlobalConfig] No overrides configured")
		return nil
	}

	for _, kv := range ctx.Config.GlobalConfig {
		_, err := ctx.Client.UpdateConfiguration(ctx, cloudapi.UpdateConfigurationRequest{Name: kv.Name, Value: kv.Value})
		if err != nil {
			return fmt.Errorf("failed to update configuration %s: %w", kv.Name, err)
		}
		ctx.Observer.Printf("[GlobalConfig] Set %s", kv.Name)
	}
	return nil
}
