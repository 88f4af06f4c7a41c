package deploy

import (
	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/provisioning"
)

// provisionZoneStorage creates cache storage, then image stores, then
// zone-wide primary storage. Object-store image stores need their cache first.
func provisionZoneStorage(ctx *provisioning.Context, zoneID string, zone *config.Zone) error {
	for i := range zone.CacheStorages {
		cache := &zone.CacheStorages[i]
		provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceCacheStorage, cache.URL)
		resp, err := ctx.Client.CreateSecondaryStagingStore(ctx, cacheStoreRequest(zoneID, cache))
		if err != nil {
			return fail(ctx, zonesPhase, provisioning.ResourceCacheStorage, cache.URL, err)
		}
		recordOptional(ctx, zonesPhase, provisioning.ResourceCacheStorage, cache.URL, resp.ID)
	}

	for i := range zone.SecondaryStorages {
		store := &zone.SecondaryStorages[i]
		provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceImageStore, store.URL)
		resp, err := ctx.Client.AddImageStore(ctx, imageStoreRequest(zoneID, store))
		if err != nil {
			return fail(ctx, zonesPhase, provisioning.ResourceImageStore, store.URL, err)
		}
		recordOptional(ctx, zonesPhase, provisioning.ResourceImageStore, store.URL, resp.ID)
	}

	for i := range zone.PrimaryStorages {
		if err := createStoragePool(ctx, zoneID, "", "", &zone.PrimaryStorages[i]); err != nil {
			return err
		}
	}
	return nil
}

// createStoragePool creates a primary storage pool. Empty podID and clusterID make it zone-wide.
func createStoragePool(ctx *provisioning.Context, zoneID, podID, clusterID string, ps *config.PrimaryStorage) error {
	provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceStoragePool, ps.Name)
	resp, err := ctx.Client.CreateStoragePool(ctx, storagePoolRequest(zoneID, podID, clusterID, ps))
	if err != nil {
		return fail(ctx, zonesPhase, provisioning.ResourceStoragePool, ps.Name, err)
	}
	recordOptional(ctx, zonesPhase, provisioning.ResourceStoragePool, ps.Name, resp.ID)
	return nil
}
