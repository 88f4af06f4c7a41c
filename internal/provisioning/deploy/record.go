package deploy

import (
	"fmt"

	"github.com/imamik/dcdeploy/internal/provisioning"
)

// fail logs a rejected create and returns the error to escalate.
func fail(ctx *provisioning.Context, phase string, typ provisioning.ResourceType, name string, err error) error {
	provisioning.LogResourceFailed(ctx.Observer, phase, typ, name, err)
	ctx.Metrics.RecordCreateFailure(typ)
	return fmt.Errorf("failed to create %s %s: %w", typ, name, err)
}

// recordRequired registers id, or escalates when it is empty.
func recordRequired(ctx *provisioning.Context, phase string, typ provisioning.ResourceType, name, id string) (string, error) {
	if id == "" {
		return "", fail(ctx, phase, typ, name, ErrMissingID)
	}
	register(ctx, phase, typ, name, id)
	return id, nil
}

// recordOptional registers id and reports whether it did. An empty id is logged and skipped.
func recordOptional(ctx *provisioning.Context, phase string, typ provisioning.ResourceType, name, id string) bool {
	if id == "" {
		provisioning.LogResourceFailed(ctx.Observer, phase, typ, name, ErrMissingID)
		ctx.Metrics.RecordCreateFailure(typ)
		return false
	}
	register(ctx, phase, typ, name, id)
	return true
}

func register(ctx *provisioning.Context, phase string, typ provisioning.ResourceType, name, id string) {
	ctx.Ledger.Register(typ, id)
	ctx.Metrics.RecordCreated(typ)
	provisioning.LogResourceCreated(ctx.Observer, phase, typ, name, id)
}
