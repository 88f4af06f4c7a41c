package config

// Network types accepted for a zone.
const (
	NetworkTypeBasic    = "Basic"
	NetworkTypeAdvanced = "Advanced"
)

// Traffic type names.
const (
	TrafficPublic     = "Public"
	TrafficGuest      = "Guest"
	TrafficManagement = "Management"
	TrafficStorage    = "Storage"
)

// Network service provider names handled by the deployer.
const (
	ProviderVirtualRouter    = "VirtualRouter"
	ProviderVpcVirtualRouter = "VpcVirtualRouter"
	ProviderInternalLbVM     = "InternalLbVm"
	ProviderSecurityGroup    = "SecurityGroupProvider"
	ProviderNiciraNvp        = "NiciraNvp"
)

// ScopeZone marks a primary storage pool as zone-wide.
const ScopeZone = "zone"

// Config is the declarative data-center topology consumed by the deployer.
type Config struct {
	// ManagementServers lists the control-plane endpoints. Only the first entry is used.
	ManagementServers []ManagementServer `json:"managementServers,omitempty"`

	// GlobalConfig holds configuration overrides applied before the first zone.
	GlobalConfig []KeyValue `json:"globalConfig,omitempty"`

	Zones []Zone    `json:"zones"`
	S3    *S3Config `json:"s3,omitempty"`

	// CleanupOnFailure controls whether a failed deploy tears down what it created.
	// Default: true
	CleanupOnFailure *bool `json:"cleanupOnFailure,omitempty"`
}

// ManagementServer describes how to reach the control-plane API.
type ManagementServer struct {
	Host      string `json:"host"`
	Port      int    `json:"port,omitempty"`
	Path      string `json:"path,omitempty"`
	UseHTTPS  bool   `json:"useHttps,omitempty"`
	APIKey    string `json:"apiKey,omitempty"`
	SecretKey string `json:"secretKey,omitempty"`
	VerifySSL *bool  `json:"verifySsl,omitempty"`
}

// KeyValue is a generic name/value pair.
type KeyValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Zone is the top-level data-center unit.
type Zone struct {
	Name                 string `json:"name"`
	DNS1                 string `json:"dns1,omitempty"`
	DNS2                 string `json:"dns2,omitempty"`
	InternalDNS1         string `json:"internaldns1,omitempty"`
	InternalDNS2         string `json:"internaldns2,omitempty"`
	NetworkType          string `json:"networktype"`
	SecurityGroupEnabled bool   `json:"securitygroupenabled,omitempty"`
	LocalStorageEnabled  bool   `json:"localstorageenabled,omitempty"`
	Domain               string `json:"domain,omitempty"`
	GuestCIDRAddress     string `json:"guestcidraddress,omitempty"`
	NetworkOfferingName  string `json:"networkofferingname,omitempty"`

	// Enabled controls whether the zone is enabled at the end of provisioning.
	// Default: true
	Enabled *bool `json:"enabled,omitempty"`

	PhysicalNetworks  []PhysicalNetwork  `json:"physical_networks,omitempty"`
	Pods              []Pod              `json:"pods,omitempty"`
	IPRanges          []IPRange          `json:"ipranges,omitempty"`
	SecondaryStorages []SecondaryStorage `json:"secondaryStorages,omitempty"`
	CacheStorages     []CacheStorage     `json:"cacheStorages,omitempty"`
	PrimaryStorages   []PrimaryStorage   `json:"primaryStorages,omitempty"`
	Details           []ZoneDetail       `json:"details,omitempty"`
}

// IsEnabled reports whether the zone should be enabled after provisioning.
func (z *Zone) IsEnabled() bool {
	return z.Enabled == nil || *z.Enabled
}

// HasPublicTraffic reports whether the first physical network carries Public traffic.
func (z *Zone) HasPublicTraffic() bool {
	if len(z.PhysicalNetworks) == 0 {
		return false
	}
	for _, tt := range z.PhysicalNetworks[0].TrafficTypes {
		if tt.Type == TrafficPublic {
			return true
		}
	}
	return false
}

// IsEIPELB reports whether the zone is a Basic zone with elastic IP and load balancing.
func (z *Zone) IsEIPELB() bool {
	return z.NetworkType == NetworkTypeBasic && z.HasPublicTraffic()
}

// ZoneDetail is a zone-level key/value override.
type ZoneDetail struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PhysicalNetwork describes a physical network inside a zone.
type PhysicalNetwork struct {
	Name                 string        `json:"name"`
	IsolationMethods     []string      `json:"isolationmethods,omitempty"`
	BroadcastDomainRange string        `json:"broadcastdomainrange,omitempty"`
	VLAN                 string        `json:"vlan,omitempty"`
	Tags                 []string      `json:"tags,omitempty"`
	TrafficTypes         []TrafficType `json:"traffictypes,omitempty"`
	Providers            []Provider    `json:"providers,omitempty"`
}

// TrafficType is a traffic type with optional hypervisor network labels.
type TrafficType struct {
	Type      string `json:"typ"`
	KVM       string `json:"kvm,omitempty"`
	Xen       string `json:"xen,omitempty"`
	VMware    string `json:"vmware,omitempty"`
	Simulator string `json:"simulator,omitempty"`
}

// Provider is a network service provider for a physical network.
type Provider struct {
	Name                 string   `json:"name"`
	BroadcastDomainRange string   `json:"broadcastdomainrange,omitempty"`
	Devices              []Device `json:"devices,omitempty"`
}

// Device is an SDN controller attached to a provider.
type Device struct {
	Hostname          string `json:"hostname"`
	Username          string `json:"username,omitempty"`
	Password          string `json:"password,omitempty"`
	TransportZoneUUID string `json:"transportzoneuuid,omitempty"`
}

// IPRange is a public or guest address range.
type IPRange struct {
	StartIP  string `json:"startip"`
	EndIP    string `json:"endip,omitempty"`
	Gateway  string `json:"gateway"`
	Netmask  string `json:"netmask"`
	VLAN     string `json:"vlan,omitempty"`
	Account  string `json:"account,omitempty"`
	DomainID string `json:"domainid,omitempty"`
}

// Pod is a zone subdivision holding clusters and a management IP range.
type Pod struct {
	Name          string    `json:"name"`
	Gateway       string    `json:"gateway"`
	Netmask       string    `json:"netmask"`
	StartIP       string    `json:"startip"`
	EndIP         string    `json:"endip,omitempty"`
	GuestIPRanges []IPRange `json:"guestIpRanges,omitempty"`
	Clusters      []Cluster `json:"clusters,omitempty"`
	VmwareDC      *VmwareDC `json:"vmwaredc,omitempty"`
}

// VmwareDC is a vCenter datacenter registered before a pod's clusters.
type VmwareDC struct {
	Name     string `json:"name"`
	VCenter  string `json:"vcenter"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Cluster groups hosts sharing primary storage.
type Cluster struct {
	Name            string           `json:"clustername"`
	ClusterType     string           `json:"clustertype,omitempty"`
	Hypervisor      string           `json:"hypervisor"`
	URL             string           `json:"url,omitempty"`
	Username        string           `json:"username,omitempty"`
	Password        string           `json:"password,omitempty"`
	Hosts           []Host           `json:"hosts,omitempty"`
	PrimaryStorages []PrimaryStorage `json:"primaryStorages,omitempty"`
}

// Host is a hypervisor host added to a cluster.
type Host struct {
	URL        string   `json:"url"`
	Username   string   `json:"username,omitempty"`
	Password   string   `json:"password,omitempty"`
	HostTags   []string `json:"hosttags,omitempty"`
	Hypervisor string   `json:"hypervisor,omitempty"`
}

// PrimaryStorage is a storage pool for running workloads.
type PrimaryStorage struct {
	Name       string            `json:"name"`
	URL        string            `json:"url"`
	Tags       string            `json:"tags,omitempty"`
	Scope      string            `json:"scope,omitempty"`
	Hypervisor string            `json:"hypervisor,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// IsZoneScoped reports whether the pool is explicitly zone-wide.
// Pools default to cluster scope.
func (p *PrimaryStorage) IsZoneScoped() bool {
	return p.Scope == ScopeZone
}

// SecondaryStorage is an image store.
type SecondaryStorage struct {
	URL      string            `json:"url"`
	Provider string            `json:"provider"`
	Name     string            `json:"name,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// CacheStorage is a secondary staging store used by object-store image stores.
type CacheStorage struct {
	URL      string            `json:"url"`
	Provider string            `json:"provider"`
	Details  map[string]string `json:"details,omitempty"`
}

// S3Config describes an external S3-compatible object store endpoint.
type S3Config struct {
	AccessKey         string `json:"accesskey"`
	SecretKey         string `json:"secretkey"`
	Bucket            string `json:"bucket"`
	Endpoint          string `json:"endpoint,omitempty"`
	UseHTTPS          *bool  `json:"usehttps,omitempty"`
	ConnectionTimeout int    `json:"connectiontimeout,omitempty"`
	MaxErrorRetry     int    `json:"maxerrorretry,omitempty"`
	SocketTimeout     int    `json:"sockettimeout,omitempty"`
}

// ShouldCleanupOnFailure reports whether a failed deploy should roll back.
func (c *Config) ShouldCleanupOnFailure() bool {
	return c.CleanupOnFailure == nil || *c.CleanupOnFailure
}
