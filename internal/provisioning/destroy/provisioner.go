package destroy

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
)

const phase = "teardown"

// Maintenance wait targets.
const (
	waitHostMaintenance = "host-maintenance"
	waitPoolMaintenance = "pool-maintenance"
)

// ErrNoHandler is recorded for ledger types this build cannot delete.
var ErrNoHandler = errors.New("no delete handler for resource type")

// Failure is a resource that could not be deleted.
type Failure struct {
	Type provisioning.ResourceType
	ID   string
	Err  error
}

// Result summarizes a teardown pass.
type Result struct {
	Deleted  int
	Failed   int
	Failures []Failure
}

// handler prepares and deletes one resource type. prepare may be nil.
type handler struct {
	prepare func(ctx *provisioning.Context, id string) error
	remove  func(ctx *provisioning.Context, id string) error
}

// Provisioner deletes ledger entries through a per-type dispatch table.
type Provisioner struct {
	handlers map[provisioning.ResourceType]handler
}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{handlers: defaultHandlers()}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision tears down everything in the context's ledger.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	result, err := p.Teardown(ctx, ctx.Ledger.Snapshot())
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d resources could not be deleted", result.Failed, result.Failed+result.Deleted)
	}
	return nil
}

// Teardown deletes every resource in snap. Per-resource API rejections are
// collected in the result; any other error stops the pass and is returned
// with the partial result.
func (p *Provisioner) Teardown(ctx *provisioning.Context, snap provisioning.LedgerSnapshot) (*Result, error) {
	result := &Result{}
	total := snap.Len()
	ctx.Observer.Printf("[Teardown] Removing %d resources...", total)

	done := 0
	for _, typ := range snap.Reverse() {
		h, ok := p.handlers[typ]
		for _, id := range snap.Resources[typ] {
			done++
			ctx.Observer.Progress(phase, done, total)

			if !ok {
				p.recordFailure(ctx, result, typ, id, ErrNoHandler)
				continue
			}

			err := p.remove(ctx, h, typ, id)
			switch {
			case err == nil:
				result.Deleted++
				ctx.Metrics.RecordDeleted(typ, true)
				provisioning.LogResourceDeleted(ctx.Observer, phase, typ, id)
			case cloudapi.IsAPIError(err):
				p.recordFailure(ctx, result, typ, id, err)
			default:
				ctx.Metrics.RecordDeleted(typ, false)
				return result, fmt.Errorf("teardown aborted at %s %s: %w", typ, id, err)
			}
		}
	}

	ctx.Observer.Printf("[Teardown] Deleted %d resources, %d failed", result.Deleted, result.Failed)
	return result, nil
}

func (p *Provisioner) remove(ctx *provisioning.Context, h handler, typ provisioning.ResourceType, id string) error {
	provisioning.LogResourceDeleting(ctx.Observer, phase, typ, id)

	if h.prepare != nil {
		if err := h.prepare(ctx, id); err != nil {
			if !cloudapi.IsAPIError(err) {
				return err
			}
			ctx.Observer.Printf("[Teardown] Could not prepare %s %s for deletion: %v", typ, id, err)
		}
	}
	return h.remove(ctx, id)
}

func (p *Provisioner) recordFailure(ctx *provisioning.Context, result *Result, typ provisioning.ResourceType, id string, err error) {
	result.Failed++
	result.Failures = append(result.Failures, Failure{Type: typ, ID: id, Err: err})
	ctx.Metrics.RecordDeleted(typ, false)
	provisioning.LogResourceFailed(ctx.Observer, phase, typ, id, err)
}

type deleteMethod func(cloudapi.Client, context.Context, cloudapi.DeleteRequest) error

func byID(del deleteMethod) func(*provisioning.Context, string) error {
	return func(ctx *provisioning.Context, id string) error {
		return del(ctx.Client, ctx, cloudapi.DeleteRequest{ID: id})
	}
}

func defaultHandlers() map[provisioning.ResourceType]handler {
	return map[provisioning.ResourceType]handler{
		provisioning.ResourceZone:                   {remove: byID(cloudapi.Client.DeleteZone)},
		provisioning.ResourcePhysicalNetwork:        {remove: byID(cloudapi.Client.DeletePhysicalNetwork)},
		provisioning.ResourceTrafficType:            {remove: byID(cloudapi.Client.DeleteTrafficType)},
		provisioning.ResourceNetworkServiceProvider: {remove: byID(cloudapi.Client.DeleteNetworkServiceProvider)},
		provisioning.ResourceNiciraNvpDevice:        {remove: byID(cloudapi.Client.DeleteNiciraNvpDevice)},
		provisioning.ResourcePod:                    {remove: byID(cloudapi.Client.DeletePod)},
		provisioning.ResourceVlanIPRange:            {remove: byID(cloudapi.Client.DeleteVlanIPRange)},
		provisioning.ResourceNetwork:                {remove: byID(cloudapi.Client.DeleteNetwork)},
		provisioning.ResourceVmwareDc:               {remove: byID(cloudapi.Client.RemoveVmwareDc)},
		provisioning.ResourceCluster:                {remove: byID(cloudapi.Client.DeleteCluster)},
		provisioning.ResourceHost:                   {prepare: prepareHost, remove: deleteHost},
		provisioning.ResourceStoragePool:            {prepare: preparePool, remove: deletePool},
		provisioning.ResourceCacheStorage:           {remove: byID(cloudapi.Client.DeleteSecondaryStagingStore)},
		provisioning.ResourceImageStore:             {remove: byID(cloudapi.Client.DeleteImageStore)},
		provisioning.ResourceS3:                     {remove: byID(cloudapi.Client.DeleteImageStore)},
	}
}
