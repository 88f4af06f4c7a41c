package cloudapi

import (
	"context"
	"net/url"
)

// createOne runs a command that returns a single object under key.
func createOne[T any](ctx context.Context, c *HTTPClient, command, key string, params url.Values) (*T, error) {
	body, err := c.call(ctx, command, params)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := decodeObject(command, body, key, out); err != nil {
		return nil, err
	}
	return out, nil
}

// listAll runs a list command that returns objects under key.
func listAll[T any](ctx context.Context, c *HTTPClient, command, key string, params url.Values) ([]T, error) {
	body, err := c.call(ctx, command, params)
	if err != nil {
		return nil, err
	}
	return decodeList[T](command, body, key)
}

// UpdateConfiguration sets a global configuration value.
func (c *HTTPClient) UpdateConfiguration(ctx context.Context, req UpdateConfigurationRequest) (*Configuration, error) {
	return createOne[Configuration](ctx, c, "updateConfiguration", "configuration", req.values())
}

// CreateZone creates a zone.
func (c *HTTPClient) CreateZone(ctx context.Context, req CreateZoneRequest) (*Zone, error) {
	return createOne[Zone](ctx, c, "createZone", "zone", req.values())
}

// UpdateZone updates a zone.
func (c *HTTPClient) UpdateZone(ctx context.Context, req UpdateZoneRequest) (*Zone, error) {
	return createOne[Zone](ctx, c, "updateZone", "zone", req.values())
}

// DeleteZone deletes a zone.
func (c *HTTPClient) DeleteZone(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteZone", req.values())
}

// CreatePhysicalNetwork creates a physical network.
func (c *HTTPClient) CreatePhysicalNetwork(ctx context.Context, req CreatePhysicalNetworkRequest) (*PhysicalNetwork, error) {
	return createOne[PhysicalNetwork](ctx, c, "createPhysicalNetwork", "physicalnetwork", req.values())
}

// UpdatePhysicalNetwork updates a physical network.
func (c *HTTPClient) UpdatePhysicalNetwork(ctx context.Context, req UpdatePhysicalNetworkRequest) (*PhysicalNetwork, error) {
	return createOne[PhysicalNetwork](ctx, c, "updatePhysicalNetwork", "physicalnetwork", req.values())
}

// DeletePhysicalNetwork deletes a physical network.
func (c *HTTPClient) DeletePhysicalNetwork(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deletePhysicalNetwork", req.values())
}

// AddTrafficType attaches a traffic type to a physical network.
func (c *HTTPClient) AddTrafficType(ctx context.Context, req AddTrafficTypeRequest) (*TrafficType, error) {
	return createOne[TrafficType](ctx, c, "addTrafficType", "traffictype", req.values())
}

// DeleteTrafficType removes a traffic type.
func (c *HTTPClient) DeleteTrafficType(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteTrafficType", req.values())
}

// ListNetworkServiceProviders lists providers.
func (c *HTTPClient) ListNetworkServiceProviders(ctx context.Context, req ListNetworkServiceProvidersRequest) ([]NetworkServiceProvider, error) {
	return listAll[NetworkServiceProvider](ctx, c, "listNetworkServiceProviders", "networkserviceprovider", req.values())
}

// AddNetworkServiceProvider adds a provider to a physical network.
func (c *HTTPClient) AddNetworkServiceProvider(ctx context.Context, req AddNetworkServiceProviderRequest) (*NetworkServiceProvider, error) {
	return createOne[NetworkServiceProvider](ctx, c, "addNetworkServiceProvider", "networkserviceprovider", req.values())
}

// UpdateNetworkServiceProvider changes a provider's state.
func (c *HTTPClient) UpdateNetworkServiceProvider(ctx context.Context, req UpdateNetworkServiceProviderRequest) (*NetworkServiceProvider, error) {
	return createOne[NetworkServiceProvider](ctx, c, "updateNetworkServiceProvider", "networkserviceprovider", req.values())
}

// DeleteNetworkServiceProvider deletes a provider.
func (c *HTTPClient) DeleteNetworkServiceProvider(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteNetworkServiceProvider", req.values())
}

// ListVirtualRouterElements lists virtual router elements for a provider.
func (c *HTTPClient) ListVirtualRouterElements(ctx context.Context, req ListElementsRequest) ([]ProviderElement, error) {
	return listAll[ProviderElement](ctx, c, "listVirtualRouterElements", "virtualrouterelement", req.values())
}

// ConfigureVirtualRouterElement enables or disables a virtual router element.
func (c *HTTPClient) ConfigureVirtualRouterElement(ctx context.Context, req ConfigureElementRequest) (*ProviderElement, error) {
	return createOne[ProviderElement](ctx, c, "configureVirtualRouterElement", "virtualrouterelement", req.values())
}

// ListInternalLoadBalancerElements lists internal load balancer elements for a provider.
func (c *HTTPClient) ListInternalLoadBalancerElements(ctx context.Context, req ListElementsRequest) ([]ProviderElement, error) {
	return listAll[ProviderElement](ctx, c, "listInternalLoadBalancerElements", "internalloadbalancerelement", req.values())
}

// ConfigureInternalLoadBalancerElement enables or disables an internal load balancer element.
func (c *HTTPClient) ConfigureInternalLoadBalancerElement(ctx context.Context, req ConfigureElementRequest) (*ProviderElement, error) {
	return createOne[ProviderElement](ctx, c, "configureInternalLoadBalancerElement", "internalloadbalancerelement", req.values())
}

// AddNiciraNvpDevice attaches an NVP controller.
func (c *HTTPClient) AddNiciraNvpDevice(ctx context.Context, req AddNiciraNvpDeviceRequest) (*NiciraNvpDevice, error) {
	return createOne[NiciraNvpDevice](ctx, c, "addNiciraNvpDevice", "niciranvpdevice", req.values())
}

// DeleteNiciraNvpDevice detaches an NVP controller.
func (c *HTTPClient) DeleteNiciraNvpDevice(ctx context.Context, req DeleteRequest) error {
	params := url.Values{"nvpdeviceid": {req.ID}}
	return c.callDelete(ctx, "deleteNiciraNvpDevice", params)
}

// ListNetworkOfferings lists network offerings.
func (c *HTTPClient) ListNetworkOfferings(ctx context.Context, req ListNetworkOfferingsRequest) ([]NetworkOffering, error) {
	return listAll[NetworkOffering](ctx, c, "listNetworkOfferings", "networkoffering", req.values())
}

// CreateNetwork creates a guest network.
func (c *HTTPClient) CreateNetwork(ctx context.Context, req CreateNetworkRequest) (*Network, error) {
	return createOne[Network](ctx, c, "createNetwork", "network", req.values())
}

// DeleteNetwork deletes a guest network.
func (c *HTTPClient) DeleteNetwork(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteNetwork", req.values())
}

// CreateVlanIPRange creates a VLAN IP range.
func (c *HTTPClient) CreateVlanIPRange(ctx context.Context, req CreateVlanIPRangeRequest) (*VlanIPRange, error) {
	return createOne[VlanIPRange](ctx, c, "createVlanIpRange", "vlan", req.values())
}

// DeleteVlanIPRange deletes a VLAN IP range.
func (c *HTTPClient) DeleteVlanIPRange(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteVlanIpRange", req.values())
}

// CreatePod creates a pod.
func (c *HTTPClient) CreatePod(ctx context.Context, req CreatePodRequest) (*Pod, error) {
	return createOne[Pod](ctx, c, "createPod", "pod", req.values())
}

// DeletePod deletes a pod.
func (c *HTTPClient) DeletePod(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deletePod", req.values())
}

// AddVmwareDc registers a VMware datacenter.
func (c *HTTPClient) AddVmwareDc(ctx context.Context, req AddVmwareDcRequest) (*VmwareDc, error) {
	return createOne[VmwareDc](ctx, c, "addVmwareDc", "vmwaredc", req.values())
}

// RemoveVmwareDc unregisters a VMware datacenter. The API removes it by zone.
func (c *HTTPClient) RemoveVmwareDc(ctx context.Context, req DeleteRequest) error {
	params := url.Values{"zoneid": {req.ID}}
	return c.callDelete(ctx, "removeVmwareDc", params)
}

// AddCluster adds a cluster.
func (c *HTTPClient) AddCluster(ctx context.Context, req AddClusterRequest) (*Cluster, error) {
	return createOne[Cluster](ctx, c, "addCluster", "cluster", req.values())
}

// DeleteCluster deletes a cluster.
func (c *HTTPClient) DeleteCluster(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteCluster", req.values())
}

// AddHost adds a host.
func (c *HTTPClient) AddHost(ctx context.Context, req AddHostRequest) (*Host, error) {
	return createOne[Host](ctx, c, "addHost", "host", req.values())
}

// ListHosts lists hosts.
func (c *HTTPClient) ListHosts(ctx context.Context, req ListHostsRequest) ([]Host, error) {
	return listAll[Host](ctx, c, "listHosts", "host", req.values())
}

// PrepareHostForMaintenance starts moving a host into maintenance.
func (c *HTTPClient) PrepareHostForMaintenance(ctx context.Context, id string) (*Host, error) {
	return createOne[Host](ctx, c, "prepareHostForMaintenance", "host", idParams(id))
}

// DeleteHost deletes a host.
func (c *HTTPClient) DeleteHost(ctx context.Context, req DeleteHostRequest) error {
	return c.callDelete(ctx, "deleteHost", req.values())
}

// CreateStoragePool creates a primary storage pool.
func (c *HTTPClient) CreateStoragePool(ctx context.Context, req CreateStoragePoolRequest) (*StoragePool, error) {
	return createOne[StoragePool](ctx, c, "createStoragePool", "storagepool", req.values())
}

// ListStoragePools lists storage pools.
func (c *HTTPClient) ListStoragePools(ctx context.Context, req ListStoragePoolsRequest) ([]StoragePool, error) {
	return listAll[StoragePool](ctx, c, "listStoragePools", "storagepool", req.values())
}

// EnableStorageMaintenance starts moving a storage pool into maintenance.
func (c *HTTPClient) EnableStorageMaintenance(ctx context.Context, id string) (*StoragePool, error) {
	return createOne[StoragePool](ctx, c, "enableStorageMaintenance", "storagepool", idParams(id))
}

// DeleteStoragePool deletes a storage pool.
func (c *HTTPClient) DeleteStoragePool(ctx context.Context, req DeleteStoragePoolRequest) error {
	return c.callDelete(ctx, "deleteStoragePool", req.values())
}

// AddImageStore adds a secondary storage image store.
func (c *HTTPClient) AddImageStore(ctx context.Context, req AddImageStoreRequest) (*ImageStore, error) {
	return createOne[ImageStore](ctx, c, "addImageStore", "imagestore", req.values())
}

// AddS3 registers an S3 image store.
func (c *HTTPClient) AddS3(ctx context.Context, req AddS3Request) (*ImageStore, error) {
	return createOne[ImageStore](ctx, c, "addS3", "s3", req.values())
}

// DeleteImageStore deletes an image store.
func (c *HTTPClient) DeleteImageStore(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteImageStore", req.values())
}

// CreateSecondaryStagingStore adds a staging store.
func (c *HTTPClient) CreateSecondaryStagingStore(ctx context.Context, req CreateSecondaryStagingStoreRequest) (*ImageStore, error) {
	return createOne[ImageStore](ctx, c, "createSecondaryStagingStore", "secondarystorage", req.values())
}

// DeleteSecondaryStagingStore deletes a staging store.
func (c *HTTPClient) DeleteSecondaryStagingStore(ctx context.Context, req DeleteRequest) error {
	return c.callDelete(ctx, "deleteSecondaryStagingStore", req.values())
}
