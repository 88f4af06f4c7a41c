package cloudapi

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// KeyValue is a detail key/value sent with zone and store requests.
type KeyValue struct {
	Key   string
	Value string
}

// UpdateConfigurationRequest sets a global configuration value.
type UpdateConfigurationRequest struct {
	Name  string
	Value string
}

// CreateZoneRequest creates a zone.
type CreateZoneRequest struct {
	Name                 string
	DNS1                 string
	DNS2                 string
	InternalDNS1         string
	InternalDNS2         string
	NetworkType          string
	SecurityGroupEnabled bool
	LocalStorageEnabled  bool
	Domain               string
	GuestCIDRAddress     string
}

// UpdateZoneRequest changes a zone's allocation state or details.
type UpdateZoneRequest struct {
	ID              string
	AllocationState string
	Details         []KeyValue
}

// CreatePhysicalNetworkRequest creates a physical network in a zone.
type CreatePhysicalNetworkRequest struct {
	ZoneID               string
	Name                 string
	IsolationMethods     []string
	BroadcastDomainRange string
	Tags                 []string
}

// UpdatePhysicalNetworkRequest changes a physical network's state and VLAN.
type UpdatePhysicalNetworkRequest struct {
	ID    string
	State string
	VLAN  string
}

// AddTrafficTypeRequest attaches a traffic type to a physical network.
type AddTrafficTypeRequest struct {
	PhysicalNetworkID string
	TrafficType       string
	KVMLabel          string
	XenLabel          string
	VMwareLabel       string
	SimulatorLabel    string
}

// ListNetworkServiceProvidersRequest filters providers on a physical network.
type ListNetworkServiceProvidersRequest struct {
	PhysicalNetworkID string
	Name              string
	State             string
}

// AddNetworkServiceProviderRequest adds a provider to a physical network.
type AddNetworkServiceProviderRequest struct {
	Name              string
	PhysicalNetworkID string
}

// UpdateNetworkServiceProviderRequest changes a provider's state.
type UpdateNetworkServiceProviderRequest struct {
	ID    string
	State string
}

// ListElementsRequest lists the elements backing a provider.
type ListElementsRequest struct {
	NSPID string
}

// ConfigureElementRequest enables or disables a provider element.
type ConfigureElementRequest struct {
	ID      string
	Enabled bool
}

// AddNiciraNvpDeviceRequest attaches an NVP controller to a physical network.
type AddNiciraNvpDeviceRequest struct {
	PhysicalNetworkID string
	Hostname          string
	Username          string
	Password          string
	TransportZoneUUID string
}

// ListNetworkOfferingsRequest looks up network offerings by name.
type ListNetworkOfferingsRequest struct {
	Name string
}

// CreateNetworkRequest creates a guest network.
type CreateNetworkRequest struct {
	ZoneID            string
	Name              string
	DisplayText       string
	NetworkOfferingID string
	StartIP           string
	EndIP             string
	Gateway           string
	Netmask           string
	VLAN              string
}

// CreatePodRequest creates a pod.
type CreatePodRequest struct {
	ZoneID  string
	Name    string
	Gateway string
	Netmask string
	StartIP string
	EndIP   string
}

// CreateVlanIPRangeRequest creates a VLAN IP range.
type CreateVlanIPRangeRequest struct {
	ZoneID            string
	PodID             string
	NetworkID         string
	StartIP           string
	EndIP             string
	Gateway           string
	Netmask           string
	VLAN              string
	Account           string
	DomainID          string
	ForVirtualNetwork bool
}

// AddVmwareDcRequest registers a VMware datacenter with a zone.
type AddVmwareDcRequest struct {
	ZoneID   string
	Name     string
	VCenter  string
	Username string
	Password string
}

// AddClusterRequest adds a cluster to a pod.
type AddClusterRequest struct {
	ZoneID      string
	PodID       string
	Name        string
	ClusterType string
	Hypervisor  string
	URL         string
	Username    string
	Password    string
}

// AddHostRequest adds a host to a cluster.
type AddHostRequest struct {
	ZoneID     string
	PodID      string
	ClusterID  string
	Hypervisor string
	URL        string
	Username   string
	Password   string
	HostTags   []string
}

// ListHostsRequest filters hosts.
type ListHostsRequest struct {
	ID        string
	ZoneID    string
	ClusterID string
}

// CreateStoragePoolRequest creates a primary storage pool.
type CreateStoragePoolRequest struct {
	ZoneID     string
	PodID      string
	ClusterID  string
	Name       string
	URL        string
	Tags       string
	Scope      string
	Hypervisor string
	Details    map[string]string
}

// ListStoragePoolsRequest filters storage pools.
type ListStoragePoolsRequest struct {
	ID string
}

// AddImageStoreRequest adds a secondary storage image store.
type AddImageStoreRequest struct {
	Name     string
	URL      string
	Provider string
	ZoneID   string
	Details  []KeyValue
}

// CreateSecondaryStagingStoreRequest adds a cache (staging) store to a zone.
type CreateSecondaryStagingStoreRequest struct {
	ZoneID   string
	URL      string
	Provider string
	Details  []KeyValue
}

// AddS3Request registers an S3 endpoint as an image store.
type AddS3Request struct {
	AccessKey         string
	SecretKey         string
	Bucket            string
	Endpoint          string
	UseHTTPS          *bool
	ConnectionTimeout int
	MaxErrorRetry     int
	SocketTimeout     int
}

// DeleteRequest deletes a resource by id.
type DeleteRequest struct {
	ID string
}

// DeleteHostRequest deletes a host.
type DeleteHostRequest struct {
	ID                       string
	Force                    bool
	ForceDestroyLocalStorage bool
}

// DeleteStoragePoolRequest deletes a storage pool.
type DeleteStoragePoolRequest struct {
	ID     string
	Forced bool
}

// params collects non-empty request parameters.
type params url.Values

func (p params) set(key, value string) {
	if value != "" {
		url.Values(p).Set(key, value)
	}
}

func (p params) setBool(key string, value bool) {
	url.Values(p).Set(key, strconv.FormatBool(value))
}

func (p params) setInt(key string, value int) {
	if value != 0 {
		url.Values(p).Set(key, strconv.Itoa(value))
	}
}

func (p params) setList(key string, values []string) {
	if len(values) > 0 {
		url.Values(p).Set(key, strings.Join(values, ","))
	}
}

func (p params) setDetails(key string, details []KeyValue) {
	for i, kv := range details {
		url.Values(p).Set(fmt.Sprintf("%s[%d].key", key, i), kv.Key)
		url.Values(p).Set(fmt.Sprintf("%s[%d].value", key, i), kv.Value)
	}
}

// SortedDetails converts a map into key-sorted detail pairs.
func SortedDetails(m map[string]string) []KeyValue {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyValue{Key: k, Value: m[k]})
	}
	return out
}

func idParams(id string) url.Values {
	p := params{}
	p.set("id", id)
	return url.Values(p)
}

func (r UpdateConfigurationRequest) values() url.Values {
	p := params{}
	p.set("name", r.Name)
	p.set("value", r.Value)
	return url.Values(p)
}

func (r CreateZoneRequest) values() url.Values {
	p := params{}
	p.set("name", r.Name)
	p.set("dns1", r.DNS1)
	p.set("dns2", r.DNS2)
	p.set("internaldns1", r.InternalDNS1)
	p.set("internaldns2", r.InternalDNS2)
	p.set("networktype", r.NetworkType)
	p.setBool("securitygroupenabled", r.SecurityGroupEnabled)
	p.setBool("localstorageenabled", r.LocalStorageEnabled)
	p.set("domain", r.Domain)
	p.set("guestcidraddress", r.GuestCIDRAddress)
	return url.Values(p)
}

func (r UpdateZoneRequest) values() url.Values {
	p := params{}
	p.set("id", r.ID)
	p.set("allocationstate", r.AllocationState)
	p.setDetails("details", r.Details)
	return url.Values(p)
}

func (r CreatePhysicalNetworkRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("name", r.Name)
	p.setList("isolationmethods", r.IsolationMethods)
	p.set("broadcastdomainrange", r.BroadcastDomainRange)
	p.setList("tags", r.Tags)
	return url.Values(p)
}

func (r UpdatePhysicalNetworkRequest) values() url.Values {
	p := params{}
	p.set("id", r.ID)
	p.set("state", r.State)
	p.set("vlan", r.VLAN)
	return url.Values(p)
}

func (r AddTrafficTypeRequest) values() url.Values {
	p := params{}
	p.set("physicalnetworkid", r.PhysicalNetworkID)
	p.set("traffictype", r.TrafficType)
	p.set("kvmnetworklabel", r.KVMLabel)
	p.set("xennetworklabel", r.XenLabel)
	p.set("vmwarenetworklabel", r.VMwareLabel)
	p.set("simulatorlabel", r.SimulatorLabel)
	return url.Values(p)
}

func (r ListNetworkServiceProvidersRequest) values() url.Values {
	p := params{}
	p.set("physicalnetworkid", r.PhysicalNetworkID)
	p.set("name", r.Name)
	p.set("state", r.State)
	return url.Values(p)
}

func (r AddNetworkServiceProviderRequest) values() url.Values {
	p := params{}
	p.set("name", r.Name)
	p.set("physicalnetworkid", r.PhysicalNetworkID)
	return url.Values(p)
}

func (r UpdateNetworkServiceProviderRequest) values() url.Values {
	p := params{}
	p.set("id", r.ID)
	p.set("state", r.State)
	return url.Values(p)
}

func (r ListElementsRequest) values() url.Values {
	p := params{}
	p.set("nspid", r.NSPID)
	return url.Values(p)
}

func (r ConfigureElementRequest) values() url.Values {
	p := params{}
	p.set("id", r.ID)
	p.setBool("enabled", r.Enabled)
	return url.Values(p)
}

func (r AddNiciraNvpDeviceRequest) values() url.Values {
	p := params{}
	p.set("physicalnetworkid", r.PhysicalNetworkID)
	p.set("hostname", r.Hostname)
	p.set("username", r.Username)
	p.set("password", r.Password)
	p.set("transportzoneuuid", r.TransportZoneUUID)
	return url.Values(p)
}

func (r ListNetworkOfferingsRequest) values() url.Values {
	p := params{}
	p.set("name", r.Name)
	return url.Values(p)
}

func (r CreateNetworkRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("name", r.Name)
	p.set("displaytext", r.DisplayText)
	p.set("networkofferingid", r.NetworkOfferingID)
	p.set("startip", r.StartIP)
	p.set("endip", r.EndIP)
	p.set("gateway", r.Gateway)
	p.set("netmask", r.Netmask)
	p.set("vlan", r.VLAN)
	return url.Values(p)
}

func (r CreatePodRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("name", r.Name)
	p.set("gateway", r.Gateway)
	p.set("netmask", r.Netmask)
	p.set("startip", r.StartIP)
	p.set("endip", r.EndIP)
	return url.Values(p)
}

func (r CreateVlanIPRangeRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("podid", r.PodID)
	p.set("networkid", r.NetworkID)
	p.set("startip", r.StartIP)
	p.set("endip", r.EndIP)
	p.set("gateway", r.Gateway)
	p.set("netmask", r.Netmask)
	p.set("vlan", r.VLAN)
	p.set("account", r.Account)
	p.set("domainid", r.DomainID)
	p.setBool("forvirtualnetwork", r.ForVirtualNetwork)
	return url.Values(p)
}

func (r AddVmwareDcRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("name", r.Name)
	p.set("vcenter", r.VCenter)
	p.set("username", r.Username)
	p.set("password", r.Password)
	return url.Values(p)
}

func (r AddClusterRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("podid", r.PodID)
	p.set("clustername", r.Name)
	p.set("clustertype", r.ClusterType)
	p.set("hypervisor", r.Hypervisor)
	p.set("url", r.URL)
	p.set("username", r.Username)
	p.set("password", r.Password)
	return url.Values(p)
}

func (r AddHostRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("podid", r.PodID)
	p.set("clusterid", r.ClusterID)
	p.set("hypervisor", r.Hypervisor)
	p.set("url", r.URL)
	p.set("username", r.Username)
	p.set("password", r.Password)
	p.setList("hosttags", r.HostTags)
	return url.Values(p)
}

func (r ListHostsRequest) values() url.Values {
	p := params{}
	p.set("id", r.ID)
	p.set("zoneid", r.ZoneID)
	p.set("clusterid", r.ClusterID)
	return url.Values(p)
}

func (r CreateStoragePoolRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("podid", r.PodID)
	p.set("clusterid", r.ClusterID)
	p.set("name", r.Name)
	p.set("url", r.URL)
	p.set("tags", r.Tags)
	p.set("scope", r.Scope)
	p.set("hypervisor", r.Hypervisor)
	p.setDetails("details", SortedDetails(r.Details))
	return url.Values(p)
}

func (r ListStoragePoolsRequest) values() url.Values {
	return idParams(r.ID)
}

func (r AddImageStoreRequest) values() url.Values {
	p := params{}
	p.set("name", r.Name)
	p.set("url", r.URL)
	p.set("provider", r.Provider)
	p.set("zoneid", r.ZoneID)
	p.setDetails("details", r.Details)
	return url.Values(p)
}

func (r CreateSecondaryStagingStoreRequest) values() url.Values {
	p := params{}
	p.set("zoneid", r.ZoneID)
	p.set("url", r.URL)
	p.set("provider", r.Provider)
	p.setDetails("details", r.Details)
	return url.Values(p)
}

func (r AddS3Request) values() url.Values {
	p := params{}
	p.set("accesskey", r.AccessKey)
	p.set("secretkey", r.SecretKey)
	p.set("bucket", r.Bucket)
	p.set("endpoint", r.Endpoint)
	if r.UseHTTPS != nil {
		p.setBool("usehttps", *r.UseHTTPS)
	}
	p.setInt("connectiontimeout", r.ConnectionTimeout)
	p.setInt("maxerrorretry", r.MaxErrorRetry)
	p.setInt("sockettimeout", r.SocketTimeout)
	return url.Values(p)
}

func (r DeleteRequest) values() url.Values {
	return idParams(r.ID)
}

func (r DeleteHostRequest) values() url.Values {
	p := params(idParams(r.ID))
	p.setBool("forced", r.Force)
	p.setBool("forcedestroylocalstorage", r.ForceDestroyLocalStorage)
	return url.Values(p)
}

func (r DeleteStoragePoolRequest) values() url.Values {
	p := params(idParams(r.ID))
	p.setBool("forced", r.Forced)
	return url.Values(p)
}
