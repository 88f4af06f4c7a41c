package provisioning

import "sync"

// ResourceType tags a ledger entry with the kind of resource it identifies.
type ResourceType string

// Resource types recorded by the deployer.
const (
	ResourceZone                   ResourceType = "Zone"
	ResourcePhysicalNetwork        ResourceType = "PhysicalNetwork"
	ResourceTrafficType            ResourceType = "TrafficType"
	ResourceNetworkServiceProvider ResourceType = "NetworkServiceProvider"
	ResourceNiciraNvpDevice        ResourceType = "NiciraNvpDevice"
	ResourcePod                    ResourceType = "Pod"
	ResourceVlanIPRange            ResourceType = "VlanIpRange"
	ResourceNetwork                ResourceType = "Network"
	ResourceVmwareDc               ResourceType = "VmwareDc"
	ResourceCluster                ResourceType = "Cluster"
	ResourceHost                   ResourceType = "Host"
	ResourceStoragePool            ResourceType = "StoragePool"
	ResourceCacheStorage           ResourceType = "CacheStorage"
	ResourceImageStore             ResourceType = "ImageStore"
	ResourceS3                     ResourceType = "S3"
)

// Ledger records every resource created during a run.
// Types are kept in the order they were first registered.
type Ledger struct {
	mu        sync.Mutex
	order     []ResourceType
	resources map[ResourceType][]string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{resources: make(map[ResourceType][]string)}
}

// Register appends id to the list for typ. Registering the same id twice records it twice.
func (l *Ledger) Register(typ ResourceType, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, seen := l.resources[typ]; !seen {
		l.order = append(l.order, typ)
	}
	l.resources[typ] = append(l.resources[typ], id)
}

// Order returns the distinct resource types in first-registration order.
func (l *Ledger) Order() []ResourceType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ResourceType(nil), l.order...)
}

// IDs returns the ids registered for typ in registration order.
func (l *Ledger) IDs(typ ResourceType) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.resources[typ]...)
}

// Len returns the total number of registered ids.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ids := range l.resources {
		n += len(ids)
	}
	return n
}

// Snapshot returns a deep copy of the ledger.
func (l *Ledger) Snapshot() LedgerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := LedgerSnapshot{
		Order:     append([]ResourceType(nil), l.order...),
		Resources: make(map[ResourceType][]string, len(l.resources)),
	}
	for typ, ids := range l.resources {
		snap.Resources[typ] = append([]string(nil), ids...)
	}
	return snap
}

// LedgerSnapshot is an immutable view of a ledger, used for persistence and teardown.
type LedgerSnapshot struct {
	Order     []ResourceType
	Resources map[ResourceType][]string
}

// Len returns the total number of ids in the snapshot.
func (s LedgerSnapshot) Len() int {
	n := 0
	for _, ids := range s.Resources {
		n += len(ids)
	}
	return n
}

// IsEmpty reports whether the snapshot holds no resources.
func (s LedgerSnapshot) IsEmpty() bool {
	return s.Len() == 0
}

// Reverse returns the resource types in teardown order.
func (s LedgerSnapshot) Reverse() []ResourceType {
	out := make([]ResourceType, 0, len(s.Order))
	for i := len(s.Order) - 1; i >= 0; i-- {
		out = append(out, s.Order[i])
	}
	return out
}
