package deploy

import (
	"strings"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
)

// Image store providers that take details and a zone id.
var (
	detailProviders = map[string]bool{"s3": true, "swift": true, "smb": true}
	zonedProviders  = map[string]bool{"nfs": true, "smb": true}
)

func zoneRequest(z *config.Zone) cloudapi.CreateZoneRequest {
	req := cloudapi.CreateZoneRequest{
		Name:                 z.Name,
		DNS1:                 z.DNS1,
		DNS2:                 z.DNS2,
		InternalDNS1:         z.InternalDNS1,
		InternalDNS2:         z.InternalDNS2,
		NetworkType:          z.NetworkType,
		SecurityGroupEnabled: z.SecurityGroupEnabled,
		LocalStorageEnabled:  z.LocalStorageEnabled,
		Domain:               z.Domain,
	}
	if !z.SecurityGroupEnabled {
		req.GuestCIDRAddress = z.GuestCIDRAddress
	}
	return req
}

func zoneDetailsRequest(zoneID string, details []config.ZoneDetail) cloudapi.UpdateZoneRequest {
	kv := make([]cloudapi.KeyValue, 0, len(details))
	for _, d := range details {
		kv = append(kv, cloudapi.KeyValue{Key: d.Key, Value: d.Value})
	}
	return cloudapi.UpdateZoneRequest{ID: zoneID, Details: kv}
}

func physicalNetworkRequest(zoneID string, pn *config.PhysicalNetwork) cloudapi.CreatePhysicalNetworkRequest {
	return cloudapi.CreatePhysicalNetworkRequest{
		ZoneID:               zoneID,
		Name:                 pn.Name,
		IsolationMethods:     pn.IsolationMethods,
		BroadcastDomainRange: pn.BroadcastDomainRange,
		Tags:                 pn.Tags,
	}
}

func trafficTypeRequest(physicalNetworkID string, tt *config.TrafficType) cloudapi.AddTrafficTypeRequest {
	return cloudapi.AddTrafficTypeRequest{
		PhysicalNetworkID: physicalNetworkID,
		TrafficType:       tt.Type,
		KVMLabel:          tt.KVM,
		XenLabel:          tt.Xen,
		VMwareLabel:       tt.VMware,
		SimulatorLabel:    tt.Simulator,
	}
}

func nvpDeviceRequest(physicalNetworkID string, d *config.Device) cloudapi.AddNiciraNvpDeviceRequest {
	return cloudapi.AddNiciraNvpDeviceRequest{
		PhysicalNetworkID: physicalNetworkID,
		Hostname:          d.Hostname,
		Username:          d.Username,
		Password:          d.Password,
		TransportZoneUUID: d.TransportZoneUUID,
	}
}

func podRequest(zoneID string, p *config.Pod) cloudapi.CreatePodRequest {
	return cloudapi.CreatePodRequest{
		ZoneID:  zoneID,
		Name:    p.Name,
		Gateway: p.Gateway,
		Netmask: p.Netmask,
		StartIP: p.StartIP,
		EndIP:   p.EndIP,
	}
}

// vlanRangeScope carries the placement of a VLAN IP range.
type vlanRangeScope struct {
	zoneID            string
	podID             string
	networkID         string
	forVirtualNetwork bool
}

func vlanIPRangeRequest(scope vlanRangeScope, r *config.IPRange) cloudapi.CreateVlanIPRangeRequest {
	return cloudapi.CreateVlanIPRangeRequest{
		ZoneID:            scope.zoneID,
		PodID:             scope.podID,
		NetworkID:         scope.networkID,
		StartIP:           r.StartIP,
		EndIP:             r.EndIP,
		Gateway:           r.Gateway,
		Netmask:           r.Netmask,
		VLAN:              r.VLAN,
		Account:           r.Account,
		DomainID:          r.DomainID,
		ForVirtualNetwork: scope.forVirtualNetwork,
	}
}

func vmwareDcRequest(zoneID string, dc *config.VmwareDC) cloudapi.AddVmwareDcRequest {
	return cloudapi.AddVmwareDcRequest{
		ZoneID:   zoneID,
		Name:     dc.Name,
		VCenter:  dc.VCenter,
		Username: dc.Username,
		Password: dc.Password,
	}
}

func clusterRequest(zoneID, podID string, c *config.Cluster) cloudapi.AddClusterRequest {
	return cloudapi.AddClusterRequest{
		ZoneID:      zoneID,
		PodID:       podID,
		Name:        c.Name,
		ClusterType: c.ClusterType,
		Hypervisor:  c.Hypervisor,
		URL:         c.URL,
		Username:    c.Username,
		Password:    c.Password,
	}
}

// hostRequest uses the cluster hypervisor, falling back to the host's own.
func hostRequest(zoneID, podID, clusterID string, c *config.Cluster, h *config.Host) cloudapi.AddHostRequest {
	hypervisor := c.Hypervisor
	if hypervisor == "" {
		hypervisor = h.Hypervisor
	}
	return cloudapi.AddHostRequest{
		ZoneID:     zoneID,
		PodID:      podID,
		ClusterID:  clusterID,
		Hypervisor: hypervisor,
		URL:        h.URL,
		Username:   h.Username,
		Password:   h.Password,
		HostTags:   h.HostTags,
	}
}

// storagePoolRequest builds a zone-wide pool when clusterID is empty or the
// pool asks for zone scope, and a cluster pool otherwise.
func storagePoolRequest(zoneID, podID, clusterID string, ps *config.PrimaryStorage) cloudapi.CreateStoragePoolRequest {
	req := cloudapi.CreateStoragePoolRequest{
		ZoneID:  zoneID,
		Name:    ps.Name,
		URL:     ps.URL,
		Tags:    ps.Tags,
		Details: ps.Details,
	}
	if clusterID == "" || ps.IsZoneScoped() {
		req.Scope = config.ScopeZone
		req.Hypervisor = ps.Hypervisor
		return req
	}
	req.PodID = podID
	req.ClusterID = clusterID
	return req
}

func imageStoreRequest(zoneID string, s *config.SecondaryStorage) cloudapi.AddImageStoreRequest {
	provider := strings.ToLower(s.Provider)
	req := cloudapi.AddImageStoreRequest{
		Name:     s.Name,
		URL:      s.URL,
		Provider: s.Provider,
	}
	if detailProviders[provider] {
		req.Details = cloudapi.SortedDetails(s.Details)
	}
	if zonedProviders[provider] {
		req.ZoneID = zoneID
	}
	return req
}

func cacheStoreRequest(zoneID string, c *config.CacheStorage) cloudapi.CreateSecondaryStagingStoreRequest {
	return cloudapi.CreateSecondaryStagingStoreRequest{
		ZoneID:   zoneID,
		URL:      c.URL,
		Provider: c.Provider,
		Details:  cloudapi.SortedDetails(c.Details),
	}
}

func s3Request(s *config.S3Config) cloudapi.AddS3Request {
	return cloudapi.AddS3Request{
		AccessKey:         s.AccessKey,
		SecretKey:         s.SecretKey,
		Bucket:            s.Bucket,
		Endpoint:          s.Endpoint,
		UseHTTPS:          s.UseHTTPS,
		ConnectionTimeout: s.ConnectionTimeout,
		MaxErrorRetry:     s.MaxErrorRetry,
		SocketTimeout:     s.SocketTimeout,
	}
}
