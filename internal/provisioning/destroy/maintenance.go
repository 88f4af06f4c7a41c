package destroy

import (
	"context"

	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
)

// prepareHost puts the host into maintenance and waits for it to get there.
func prepareHost(ctx *provisioning.Context, id string) error {
	if _, err := ctx.Client.PrepareHostForMaintenance(ctx, id); err != nil {
		return err
	}
	return waitForMaintenance(ctx, waitHostMaintenance, id, func(c context.Context) (bool, error) {
		hosts, err := ctx.Client.ListHosts(c, cloudapi.ListHostsRequest{ID: id})
		if err != nil {
			return false, err
		}
		return len(hosts) > 0 && hosts[0].ResourceState == cloudapi.StateMaintenance, nil
	})
}

func deleteHost(ctx *provisioning.Context, id string) error {
	return ctx.Client.DeleteHost(ctx, cloudapi.DeleteHostRequest{
		ID:                       id,
		Force:                    true,
		ForceDestroyLocalStorage: true,
	})
}

// preparePool puts the storage pool into maintenance and waits for it to get there.
func preparePool(ctx *provisioning.Context, id string) error {
	if _, err := ctx.Client.EnableStorageMaintenance(ctx, id); err != nil {
		return err
	}
	return waitForMaintenance(ctx, waitPoolMaintenance, id, func(c context.Context) (bool, error) {
		pools, err := ctx.Client.ListStoragePools(c, cloudapi.ListStoragePoolsRequest{ID: id})
		if err != nil {
			return false, err
		}
		return len(pools) > 0 && pools[0].State == cloudapi.StateMaintenance, nil
	})
}

func deletePool(ctx *provisioning.Context, id string) error {
	return ctx.Client.DeleteStoragePool(ctx, cloudapi.DeleteStoragePoolRequest{ID: id, Forced: true})
}

// waitForMaintenance polls check with the maintenance waiter. Running out of
// attempts is logged; the delete is attempted either way.
func waitForMaintenance(ctx *provisioning.Context, target, id string, check func(context.Context) (bool, error)) error {
	waiter := ctx.MaintenanceWaiter()
	converged, err := waiter.Until(ctx, check)
	if err != nil {
		return err
	}
	ctx.Metrics.RecordWait(target, converged)
	if !converged {
		provisioning.LogWaitGaveUp(ctx.Observer, phase, target, id, waiter.Attempts)
	}
	return nil
}
