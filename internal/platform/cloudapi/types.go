package cloudapi

// Resource states reported by the API.
const (
	StateUp          = "Up"
	StateEnabled     = "Enabled"
	StateDisabled    = "Disabled"
	StateMaintenance = "Maintenance"
)

// Configuration is a global configuration value.
type Configuration struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Zone is a created zone.
type Zone struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AllocationState string `json:"allocationstate,omitempty"`
}

// PhysicalNetwork is a created physical network.
type PhysicalNetwork struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
	VLAN  string `json:"vlan,omitempty"`
}

// TrafficType is a traffic type attached to a physical network.
type TrafficType struct {
	ID          string `json:"id"`
	TrafficType string `json:"traffictype"`
}

// NetworkServiceProvider is a provider on a physical network.
type NetworkServiceProvider struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	State             string `json:"state"`
	PhysicalNetworkID string `json:"physicalnetworkid"`
}

// ProviderElement is a virtual router or internal load balancer element.
type ProviderElement struct {
	ID      string `json:"id"`
	NSPID   string `json:"nspid"`
	Enabled bool   `json:"enabled"`
}

// NiciraNvpDevice is an NVP controller attached to a physical network.
type NiciraNvpDevice struct {
	ID       string `json:"nvpdeviceid"`
	Hostname string `json:"hostname"`
}

// NetworkOffering is a network offering.
type NetworkOffering struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Network is a guest network.
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VlanIPRange is a created VLAN IP range.
type VlanIPRange struct {
	ID      string `json:"id"`
	StartIP string `json:"startip"`
	EndIP   string `json:"endip"`
}

// Pod is a created pod.
type Pod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VmwareDc is a registered VMware datacenter.
type VmwareDc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cluster is a created cluster.
type Cluster struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Host is a hypervisor host.
type Host struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	State         string `json:"state"`
	ResourceState string `json:"resourcestate"`
	ClusterID     string `json:"clusterid,omitempty"`
}

// StoragePool is a primary storage pool.
type StoragePool struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// ImageStore is a secondary or staging store.
type ImageStore struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"providername"`
}
