package cloudapi

import "context"

// ConfigurationManager updates global configuration values.
type ConfigurationManager interface {
	UpdateConfiguration(ctx context.Context, req UpdateConfigurationRequest) (*Configuration, error)
}

// ZoneManager defines zone lifecycle operations.
type ZoneManager interface {
	CreateZone(ctx context.Context, req CreateZoneRequest) (*Zone, error)
	UpdateZone(ctx context.Context, req UpdateZoneRequest) (*Zone, error)
	DeleteZone(ctx context.Context, req DeleteRequest) error
}

// PhysicalNetworkManager defines physical network, traffic type and provider operations.
type PhysicalNetworkManager interface {
	CreatePhysicalNetwork(ctx context.Context, req CreatePhysicalNetworkRequest) (*PhysicalNetwork, error)
	UpdatePhysicalNetwork(ctx context.Context, req UpdatePhysicalNetworkRequest) (*PhysicalNetwork, error)
	DeletePhysicalNetwork(ctx context.Context, req DeleteRequest) error

	AddTrafficType(ctx context.Context, req AddTrafficTypeRequest) (*TrafficType, error)
	DeleteTrafficType(ctx context.Context, req DeleteRequest) error

	ListNetworkServiceProviders(ctx context.Context, req ListNetworkServiceProvidersRequest) ([]NetworkServiceProvider, error)
	AddNetworkServiceProvider(ctx context.Context, req AddNetworkServiceProviderRequest) (*NetworkServiceProvider, error)
	UpdateNetworkServiceProvider(ctx context.Context, req UpdateNetworkServiceProviderRequest) (*NetworkServiceProvider, error)
	DeleteNetworkServiceProvider(ctx context.Context, req DeleteRequest) error

	ListVirtualRouterElements(ctx context.Context, req ListElementsRequest) ([]ProviderElement, error)
	ConfigureVirtualRouterElement(ctx context.Context, req ConfigureElementRequest) (*ProviderElement, error)
	ListInternalLoadBalancerElements(ctx context.Context, req ListElementsRequest) ([]ProviderElement, error)
	ConfigureInternalLoadBalancerElement(ctx context.Context, req ConfigureElementRequest) (*ProviderElement, error)

	AddNiciraNvpDevice(ctx context.Context, req AddNiciraNvpDeviceRequest) (*NiciraNvpDevice, error)
	DeleteNiciraNvpDevice(ctx context.Context, req DeleteRequest) error
}

// NetworkManager defines guest network and IP range operations.
type NetworkManager interface {
	ListNetworkOfferings(ctx context.Context, req ListNetworkOfferingsRequest) ([]NetworkOffering, error)
	CreateNetwork(ctx context.Context, req CreateNetworkRequest) (*Network, error)
	DeleteNetwork(ctx context.Context, req DeleteRequest) error

	CreateVlanIPRange(ctx context.Context, req CreateVlanIPRangeRequest) (*VlanIPRange, error)
	DeleteVlanIPRange(ctx context.Context, req DeleteRequest) error
}

// PodManager defines pod operations.
type PodManager interface {
	CreatePod(ctx context.Context, req CreatePodRequest) (*Pod, error)
	DeletePod(ctx context.Context, req DeleteRequest) error
}

// ClusterManager defines cluster and hypervisor datacenter operations.
type ClusterManager interface {
	AddVmwareDc(ctx context.Context, req AddVmwareDcRequest) (*VmwareDc, error)
	RemoveVmwareDc(ctx context.Context, req DeleteRequest) error
	AddCluster(ctx context.Context, req AddClusterRequest) (*Cluster, error)
	DeleteCluster(ctx context.Context, req DeleteRequest) error
}

// HostManager defines host operations.
type HostManager interface {
	AddHost(ctx context.Context, req AddHostRequest) (*Host, error)
	ListHosts(ctx context.Context, req ListHostsRequest) ([]Host, error)
	PrepareHostForMaintenance(ctx context.Context, id string) (*Host, error)
	DeleteHost(ctx context.Context, req DeleteHostRequest) error
}

// StorageManager defines primary, secondary and staging storage operations.
type StorageManager interface {
	CreateStoragePool(ctx context.Context, req CreateStoragePoolRequest) (*StoragePool, error)
	ListStoragePools(ctx context.Context, req ListStoragePoolsRequest) ([]StoragePool, error)
	EnableStorageMaintenance(ctx context.Context, id string) (*StoragePool, error)
	DeleteStoragePool(ctx context.Context, req DeleteStoragePoolRequest) error

	AddImageStore(ctx context.Context, req AddImageStoreRequest) (*ImageStore, error)
	AddS3(ctx context.Context, req AddS3Request) (*ImageStore, error)
	DeleteImageStore(ctx context.Context, req DeleteRequest) error

	CreateSecondaryStagingStore(ctx context.Context, req CreateSecondaryStagingStoreRequest) (*ImageStore, error)
	DeleteSecondaryStagingStore(ctx context.Context, req DeleteRequest) error
}

// Client combines all control-plane interfaces.
type Client interface {
	ConfigurationManager
	ZoneManager
	PhysicalNetworkManager
	NetworkManager
	PodManager
	ClusterManager
	HostManager
	StorageManager
}
