package testing

import (
	"fmt"

	"github.com/imamik/dcdeploy/internal/config"
)

// PhysicalNetwork returns a physical network carrying the given traffic types
// with the default routing providers.
func PhysicalNetwork(name string, traffic ...string) config.PhysicalNetwork {
	pn := config.PhysicalNetwork{
		Name:                 name,
		BroadcastDomainRange: "Zone",
		Providers: []config.Provider{
			{Name: config.ProviderVirtualRouter},
			{Name: config.ProviderSecurityGroup},
		},
	}
	for _, t := range traffic {
		pn.TrafficTypes = append(pn.TrafficTypes, config.TrafficType{Type: t, KVM: "cloudbr0"})
	}
	return pn
}

// Host returns a KVM host reachable at ip.
func Host(ip string) config.Host {
	return config.Host{URL: "http://" + ip, Username: "root", Password: "password"}
}

// Cluster returns a KVM cluster with one host per ip and one NFS primary storage.
func Cluster(name string, hostIPs ...string) config.Cluster {
	cl := config.Cluster{
		Name:        name,
		ClusterType: "CloudManaged",
		Hypervisor:  "KVM",
		PrimaryStorages: []config.PrimaryStorage{{
			Name: name + "-primary",
			URL:  fmt.Sprintf("nfs://10.147.28.6/export/%s", name),
		}},
	}
	for _, ip := range hostIPs {
		cl.Hosts = append(cl.Hosts, Host(ip))
	}
	return cl
}

// Pod returns a pod on 192.168.56.0/24 holding the given clusters.
func Pod(name string, clusters ...config.Cluster) config.Pod {
	return config.Pod{
		Name:     name,
		Gateway:  "192.168.56.1",
		Netmask:  "255.255.255.0",
		StartIP:  "192.168.56.200",
		EndIP:    "192.168.56.220",
		Clusters: clusters,
	}
}

// IPRange returns a /24 range on 10.1.<octet>.0.
func IPRange(octet int) config.IPRange {
	return config.IPRange{
		StartIP: fmt.Sprintf("10.1.%d.10", octet),
		EndIP:   fmt.Sprintf("10.1.%d.100", octet),
		Gateway: fmt.Sprintf("10.1.%d.1", octet),
		Netmask: "255.255.255.0",
		VLAN:    fmt.Sprintf("%d", 100+octet),
	}
}

// NFSSecondary returns an NFS image store.
func NFSSecondary() config.SecondaryStorage {
	return config.SecondaryStorage{URL: "nfs://10.147.28.6/export/secondary", Provider: "NFS"}
}

// BasicZone returns a Basic zone with one pod, one cluster of two hosts and
// an NFS image store. Its physical network carries no Public traffic.
func BasicZone(name string) config.Zone {
	pod := Pod("pod1", Cluster("cluster1", "192.168.56.10", "192.168.56.11"))
	pod.GuestIPRanges = []config.IPRange{IPRange(1)}
	return NewZoneBuilder(name, config.NetworkTypeBasic).
		WithSecurityGroups().
		WithPhysicalNetwork(PhysicalNetwork("pn1", config.TrafficGuest, config.TrafficManagement)).
		WithPod(pod).
		WithSecondaryStorage(NFSSecondary()).
		Build()
}

// EIPELBZone returns a Basic zone whose physical network carries Public traffic.
func EIPELBZone(name string) config.Zone {
	return NewZoneBuilder(name, config.NetworkTypeBasic).
		WithSecurityGroups().
		WithPhysicalNetwork(PhysicalNetwork("pn1", config.TrafficGuest, config.TrafficManagement, config.TrafficPublic)).
		WithPod(Pod("pod1", Cluster("cluster1", "192.168.56.10"))).
		WithIPRange(IPRange(2)).
		WithSecondaryStorage(NFSSecondary()).
		Build()
}

// AdvancedZone returns an Advanced zone without security groups and one public range.
func AdvancedZone(name string) config.Zone {
	return NewZoneBuilder(name, config.NetworkTypeAdvanced).
		WithGuestCIDR("10.1.1.0/24").
		WithPhysicalNetwork(PhysicalNetwork("pn1", config.TrafficGuest, config.TrafficManagement, config.TrafficPublic)).
		WithPod(Pod("pod1", Cluster("cluster1", "192.168.56.10"))).
		WithIPRange(IPRange(3)).
		WithSecondaryStorage(NFSSecondary()).
		Build()
}

// AdvancedSGZone returns an Advanced zone with security groups and two ranges.
func AdvancedSGZone(name string) config.Zone {
	pod := Pod("pod1", Cluster("cluster1", "192.168.56.10"))
	pod.GuestIPRanges = []config.IPRange{IPRange(9)}
	return NewZoneBuilder(name, config.NetworkTypeAdvanced).
		WithSecurityGroups().
		WithPhysicalNetwork(PhysicalNetwork("pn1", config.TrafficGuest, config.TrafficManagement)).
		WithPod(pod).
		WithIPRange(IPRange(4)).
		WithIPRange(IPRange(5)).
		WithSecondaryStorage(NFSSecondary()).
		Build()
}
