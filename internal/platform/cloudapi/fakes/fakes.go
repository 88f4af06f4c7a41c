// Package fakes provides an in-memory control plane implementing cloudapi.Client.
package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
)

// Resource state reported for hosts and pools entering maintenance.
const StatePrepareForMaintenance = "PrepareForMaintenance"

// Offerings seeded into every fake.
const (
	OfferingEIPELB        = "DefaultSharedNetscalerEIPandELBNetworkOffering"
	OfferingSharedWithSG  = "DefaultSharedNetworkOfferingWithSGService"
	OfferingIsolatedNoNAT = "DefaultIsolatedNetworkOffering"
)

// Deletion records a delete call.
type Deletion struct {
	Op string
	ID string
}

// Cloud simulates the control plane.
type Cloud struct {
	mu sync.Mutex

	calls     []string
	requests  map[string][]any
	deletions []Deletion
	failures  map[string][]error
	noID      map[string]int

	zoneNames map[string]bool
	offerings map[string]string
	providers map[string][]*cloudapi.NetworkServiceProvider
	elements  map[string]*cloudapi.ProviderElement
	hosts     map[string]*hostRecord
	hostOrder []string
	pools     map[string]*poolRecord

	// HostState is the state new hosts report. Default: Up.
	HostState string
	// HostUpAfter is the number of ListHosts calls before a non-Up host becomes Up.
	// Zero keeps HostState forever.
	HostUpAfter int
	// MaintenanceAfter is the number of list polls before a resource in
	// PrepareForMaintenance reports Maintenance. Negative means never.
	MaintenanceAfter int
}

type hostRecord struct {
	host  cloudapi.Host
	polls int
}

type poolRecord struct {
	pool  cloudapi.StoragePool
	polls int
}

var _ cloudapi.Client = (*Cloud)(nil)

// New creates an empty fake control plane.
func New() *Cloud {
	return &Cloud{
		requests:  make(map[string][]any),
		failures:  make(map[string][]error),
		noID:      make(map[string]int),
		zoneNames: make(map[string]bool),
		offerings: map[string]string{
			OfferingEIPELB:        uuid.NewString(),
			OfferingSharedWithSG:  uuid.NewString(),
			OfferingIsolatedNoNAT: uuid.NewString(),
		},
		providers: make(map[string][]*cloudapi.NetworkServiceProvider),
		elements:  make(map[string]*cloudapi.ProviderElement),
		hosts:     make(map[string]*hostRecord),
		pools:     make(map[string]*poolRecord),
		HostState: cloudapi.StateUp,
	}
}

// FailNext makes the next call to op return err. Calls queue in order.
func (f *Cloud) FailNext(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = append(f.failures[op], err)
}

// ReturnNoID makes the next call to op succeed with an empty id.
func (f *Cloud) ReturnNoID(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noID[op]++
}

// ReserveZoneName marks a zone name as taken.
func (f *Cloud) ReserveZoneName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.zoneNames[name] = true
}

// AddOffering registers a network offering and returns its id.
func (f *Cloud) AddOffering(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.offerings[name] = id
	return id
}

// OfferingID returns the id of a seeded or added offering.
func (f *Cloud) OfferingID(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offerings[name]
}

// Calls returns the operation names invoked so far.
func (f *Cloud) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how often op was invoked.
func (f *Cloud) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// Requests returns the requests captured for op.
func (f *Cloud) Requests(op string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.requests[op]...)
}

// Deletions returns every successful delete in call order.
func (f *Cloud) Deletions() []Deletion {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Deletion(nil), f.deletions...)
}

// Host returns the current view of a host.
func (f *Cloud) Host(id string) (cloudapi.Host, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.hosts[id]
	if !ok {
		return cloudapi.Host{}, false
	}
	return rec.host, true
}

// enter records a call and pops a queued failure. Callers hold f.mu.
func (f *Cloud) enter(op string, req any) error {
	f.calls = append(f.calls, op)
	f.requests[op] = append(f.requests[op], req)
	if q := f.failures[op]; len(q) > 0 {
		f.failures[op] = q[1:]
		return q[0]
	}
	return nil
}

func (f *Cloud) newID(op string) string {
	if f.noID[op] > 0 {
		f.noID[op]--
		return ""
	}
	return uuid.NewString()
}

func (f *Cloud) remove(op, id string, req any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(op, req); err != nil {
		return err
	}
	f.deletions = append(f.deletions, Deletion{Op: op, ID: id})
	return nil
}

// UpdateConfiguration records the new value.
func (f *Cloud) UpdateConfiguration(_ context.Context, req cloudapi.UpdateConfigurationRequest) (*cloudapi.Configuration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateConfiguration", req); err != nil {
		return nil, err
	}
	return &cloudapi.Configuration{Name: req.Name, Value: req.Value}, nil
}

// CreateZone rejects names already taken.
func (f *Cloud) CreateZone(_ context.Context, req cloudapi.CreateZoneRequest) (*cloudapi.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateZone", req); err != nil {
		return nil, err
	}
	if f.zoneNames[req.Name] {
		return nil, &cloudapi.APIError{
			Command: "createZone",
			Code:    cloudapi.ErrCodeParamError,
			Text:    fmt.Sprintf("A zone with name %s already exists", req.Name),
		}
	}
	id := f.newID("CreateZone")
	if id != "" {
		f.zoneNames[req.Name] = true
	}
	return &cloudapi.Zone{ID: id, Name: req.Name, AllocationState: cloudapi.StateDisabled}, nil
}

func (f *Cloud) UpdateZone(_ context.Context, req cloudapi.UpdateZoneRequest) (*cloudapi.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateZone", req); err != nil {
		return nil, err
	}
	return &cloudapi.Zone{ID: req.ID, AllocationState: req.AllocationState}, nil
}

func (f *Cloud) DeleteZone(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteZone", req.ID, req)
}

// CreatePhysicalNetwork seeds the providers the control plane creates by default.
func (f *Cloud) CreatePhysicalNetwork(_ context.Context, req cloudapi.CreatePhysicalNetworkRequest) (*cloudapi.PhysicalNetwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreatePhysicalNetwork", req); err != nil {
		return nil, err
	}
	id := f.newID("CreatePhysicalNetwork")
	if id != "" {
		for _, name := range []string{"VirtualRouter", "VpcVirtualRouter", "InternalLbVm", "SecurityGroupProvider"} {
			nsp := &cloudapi.NetworkServiceProvider{
				ID:                uuid.NewString(),
				Name:              name,
				State:             cloudapi.StateDisabled,
				PhysicalNetworkID: id,
			}
			f.providers[id] = append(f.providers[id], nsp)
			f.elements[nsp.ID] = &cloudapi.ProviderElement{ID: uuid.NewString(), NSPID: nsp.ID}
		}
	}
	return &cloudapi.PhysicalNetwork{ID: id, Name: req.Name, State: cloudapi.StateDisabled}, nil
}

func (f *Cloud) UpdatePhysicalNetwork(_ context.Context, req cloudapi.UpdatePhysicalNetworkRequest) (*cloudapi.PhysicalNetwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdatePhysicalNetwork", req); err != nil {
		return nil, err
	}
	return &cloudapi.PhysicalNetwork{ID: req.ID, State: req.State, VLAN: req.VLAN}, nil
}

func (f *Cloud) DeletePhysicalNetwork(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeletePhysicalNetwork", req.ID, req)
}

func (f *Cloud) AddTrafficType(_ context.Context, req cloudapi.AddTrafficTypeRequest) (*cloudapi.TrafficType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddTrafficType", req); err != nil {
		return nil, err
	}
	return &cloudapi.TrafficType{ID: f.newID("AddTrafficType"), TrafficType: req.TrafficType}, nil
}

func (f *Cloud) DeleteTrafficType(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteTrafficType", req.ID, req)
}

// ListNetworkServiceProviders filters by physical network, name and state.
func (f *Cloud) ListNetworkServiceProviders(_ context.Context, req cloudapi.ListNetworkServiceProvidersRequest) ([]cloudapi.NetworkServiceProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListNetworkServiceProviders", req); err != nil {
		return nil, err
	}
	var out []cloudapi.NetworkServiceProvider
	for _, nsp := range f.providers[req.PhysicalNetworkID] {
		if req.Name != "" && nsp.Name != req.Name {
			continue
		}
		if req.State != "" && nsp.State != req.State {
			continue
		}
		out = append(out, *nsp)
	}
	return out, nil
}

func (f *Cloud) AddNetworkServiceProvider(_ context.Context, req cloudapi.AddNetworkServiceProviderRequest) (*cloudapi.NetworkServiceProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddNetworkServiceProvider", req); err != nil {
		return nil, err
	}
	nsp := &cloudapi.NetworkServiceProvider{
		ID:                f.newID("AddNetworkServiceProvider"),
		Name:              req.Name,
		State:             cloudapi.StateDisabled,
		PhysicalNetworkID: req.PhysicalNetworkID,
	}
	if nsp.ID != "" {
		f.providers[req.PhysicalNetworkID] = append(f.providers[req.PhysicalNetworkID], nsp)
	}
	out := *nsp
	return &out, nil
}

func (f *Cloud) UpdateNetworkServiceProvider(_ context.Context, req cloudapi.UpdateNetworkServiceProviderRequest) (*cloudapi.NetworkServiceProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateNetworkServiceProvider", req); err != nil {
		return nil, err
	}
	for _, list := range f.providers {
		for _, nsp := range list {
			if nsp.ID == req.ID {
				nsp.State = req.State
				out := *nsp
				return &out, nil
			}
		}
	}
	return nil, &cloudapi.APIError{Command: "updateNetworkServiceProvider", Code: cloudapi.ErrCodeParamError, Text: "provider not found"}
}

func (f *Cloud) DeleteNetworkServiceProvider(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteNetworkServiceProvider", req.ID, req)
}

func (f *Cloud) listElements(op string, req cloudapi.ListElementsRequest) ([]cloudapi.ProviderElement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(op, req); err != nil {
		return nil, err
	}
	if el, ok := f.elements[req.NSPID]; ok {
		return []cloudapi.ProviderElement{*el}, nil
	}
	return nil, nil
}

func (f *Cloud) configureElement(op string, req cloudapi.ConfigureElementRequest) (*cloudapi.ProviderElement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(op, req); err != nil {
		return nil, err
	}
	for _, el := range f.elements {
		if el.ID == req.ID {
			el.Enabled = req.Enabled
			out := *el
			return &out, nil
		}
	}
	return &cloudapi.ProviderElement{ID: req.ID, Enabled: req.Enabled}, nil
}

func (f *Cloud) ListVirtualRouterElements(_ context.Context, req cloudapi.ListElementsRequest) ([]cloudapi.ProviderElement, error) {
	return f.listElements("ListVirtualRouterElements", req)
}

func (f *Cloud) ConfigureVirtualRouterElement(_ context.Context, req cloudapi.ConfigureElementRequest) (*cloudapi.ProviderElement, error) {
	return f.configureElement("ConfigureVirtualRouterElement", req)
}

func (f *Cloud) ListInternalLoadBalancerElements(_ context.Context, req cloudapi.ListElementsRequest) ([]cloudapi.ProviderElement, error) {
	return f.listElements("ListInternalLoadBalancerElements", req)
}

func (f *Cloud) ConfigureInternalLoadBalancerElement(_ context.Context, req cloudapi.ConfigureElementRequest) (*cloudapi.ProviderElement, error) {
	return f.configureElement("ConfigureInternalLoadBalancerElement", req)
}

func (f *Cloud) AddNiciraNvpDevice(_ context.Context, req cloudapi.AddNiciraNvpDeviceRequest) (*cloudapi.NiciraNvpDevice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddNiciraNvpDevice", req); err != nil {
		return nil, err
	}
	return &cloudapi.NiciraNvpDevice{ID: f.newID("AddNiciraNvpDevice"), Hostname: req.Hostname}, nil
}

func (f *Cloud) DeleteNiciraNvpDevice(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteNiciraNvpDevice", req.ID, req)
}

// ListNetworkOfferings returns the offering matching the requested name.
func (f *Cloud) ListNetworkOfferings(_ context.Context, req cloudapi.ListNetworkOfferingsRequest) ([]cloudapi.NetworkOffering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListNetworkOfferings", req); err != nil {
		return nil, err
	}
	id, ok := f.offerings[req.Name]
	if !ok {
		return nil, nil
	}
	return []cloudapi.NetworkOffering{{ID: id, Name: req.Name}}, nil
}

func (f *Cloud) CreateNetwork(_ context.Context, req cloudapi.CreateNetworkRequest) (*cloudapi.Network, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateNetwork", req); err != nil {
		return nil, err
	}
	return &cloudapi.Network{ID: f.newID("CreateNetwork"), Name: req.Name}, nil
}

func (f *Cloud) DeleteNetwork(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteNetwork", req.ID, req)
}

func (f *Cloud) CreateVlanIPRange(_ context.Context, req cloudapi.CreateVlanIPRangeRequest) (*cloudapi.VlanIPRange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateVlanIPRange", req); err != nil {
		return nil, err
	}
	return &cloudapi.VlanIPRange{ID: f.newID("CreateVlanIPRange"), StartIP: req.StartIP, EndIP: req.EndIP}, nil
}

func (f *Cloud) DeleteVlanIPRange(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteVlanIPRange", req.ID, req)
}

func (f *Cloud) CreatePod(_ context.Context, req cloudapi.CreatePodRequest) (*cloudapi.Pod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreatePod", req); err != nil {
		return nil, err
	}
	return &cloudapi.Pod{ID: f.newID("CreatePod"), Name: req.Name}, nil
}

func (f *Cloud) DeletePod(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeletePod", req.ID, req)
}

func (f *Cloud) AddVmwareDc(_ context.Context, req cloudapi.AddVmwareDcRequest) (*cloudapi.VmwareDc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddVmwareDc", req); err != nil {
		return nil, err
	}
	return &cloudapi.VmwareDc{ID: f.newID("AddVmwareDc"), Name: req.Name}, nil
}

func (f *Cloud) RemoveVmwareDc(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("RemoveVmwareDc", req.ID, req)
}

func (f *Cloud) AddCluster(_ context.Context, req cloudapi.AddClusterRequest) (*cloudapi.Cluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddCluster", req); err != nil {
		return nil, err
	}
	return &cloudapi.Cluster{ID: f.newID("AddCluster"), Name: req.Name}, nil
}

func (f *Cloud) DeleteCluster(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteCluster", req.ID, req)
}

// AddHost registers a host reporting HostState.
func (f *Cloud) AddHost(_ context.Context, req cloudapi.AddHostRequest) (*cloudapi.Host, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddHost", req); err != nil {
		return nil, err
	}
	host := cloudapi.Host{
		ID:            f.newID("AddHost"),
		Name:          req.URL,
		State:         f.HostState,
		ResourceState: cloudapi.StateEnabled,
		ClusterID:     req.ClusterID,
	}
	if host.ID != "" {
		f.hosts[host.ID] = &hostRecord{host: host}
		f.hostOrder = append(f.hostOrder, host.ID)
	}
	return &host, nil
}

// ListHosts advances host state by one poll before answering.
func (f *Cloud) ListHosts(_ context.Context, req cloudapi.ListHostsRequest) ([]cloudapi.Host, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListHosts", req); err != nil {
		return nil, err
	}
	var out []cloudapi.Host
	for _, id := range f.hostOrder {
		rec, ok := f.hosts[id]
		if !ok {
			continue
		}
		if req.ID != "" && rec.host.ID != req.ID {
			continue
		}
		if req.ClusterID != "" && rec.host.ClusterID != req.ClusterID {
			continue
		}
		rec.polls++
		if rec.host.State != cloudapi.StateUp && f.HostUpAfter > 0 && rec.polls >= f.HostUpAfter {
			rec.host.State = cloudapi.StateUp
		}
		if rec.host.ResourceState == StatePrepareForMaintenance && f.MaintenanceAfter >= 0 && rec.polls >= f.MaintenanceAfter {
			rec.host.ResourceState = cloudapi.StateMaintenance
		}
		out = append(out, rec.host)
	}
	return out, nil
}

func (f *Cloud) PrepareHostForMaintenance(_ context.Context, id string) (*cloudapi.Host, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("PrepareHostForMaintenance", id); err != nil {
		return nil, err
	}
	rec, ok := f.hosts[id]
	if !ok {
		return nil, &cloudapi.APIError{Command: "prepareHostForMaintenance", Code: cloudapi.ErrCodeParamError, Text: "host not found"}
	}
	rec.host.ResourceState = StatePrepareForMaintenance
	rec.polls = 0
	out := rec.host
	return &out, nil
}

func (f *Cloud) DeleteHost(_ context.Context, req cloudapi.DeleteHostRequest) error {
	if err := f.remove("DeleteHost", req.ID, req); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.hosts, req.ID)
	return nil
}

func (f *Cloud) CreateStoragePool(_ context.Context, req cloudapi.CreateStoragePoolRequest) (*cloudapi.StoragePool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateStoragePool", req); err != nil {
		return nil, err
	}
	pool := cloudapi.StoragePool{ID: f.newID("CreateStoragePool"), Name: req.Name, State: cloudapi.StateUp}
	if pool.ID != "" {
		f.pools[pool.ID] = &poolRecord{pool: pool}
	}
	return &pool, nil
}

// ListStoragePools advances pool state by one poll before answering.
func (f *Cloud) ListStoragePools(_ context.Context, req cloudapi.ListStoragePoolsRequest) ([]cloudapi.StoragePool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListStoragePools", req); err != nil {
		return nil, err
	}
	rec, ok := f.pools[req.ID]
	if !ok {
		return nil, nil
	}
	rec.polls++
	if rec.pool.State == StatePrepareForMaintenance && f.MaintenanceAfter >= 0 && rec.polls >= f.MaintenanceAfter {
		rec.pool.State = cloudapi.StateMaintenance
	}
	return []cloudapi.StoragePool{rec.pool}, nil
}

func (f *Cloud) EnableStorageMaintenance(_ context.Context, id string) (*cloudapi.StoragePool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("EnableStorageMaintenance", id); err != nil {
		return nil, err
	}
	rec, ok := f.pools[id]
	if !ok {
		return nil, &cloudapi.APIError{Command: "enableStorageMaintenance", Code: cloudapi.ErrCodeParamError, Text: "storage pool not found"}
	}
	rec.pool.State = StatePrepareForMaintenance
	rec.polls = 0
	out := rec.pool
	return &out, nil
}

func (f *Cloud) DeleteStoragePool(_ context.Context, req cloudapi.DeleteStoragePoolRequest) error {
	if err := f.remove("DeleteStoragePool", req.ID, req); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pools, req.ID)
	return nil
}

func (f *Cloud) AddImageStore(_ context.Context, req cloudapi.AddImageStoreRequest) (*cloudapi.ImageStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddImageStore", req); err != nil {
		return nil, err
	}
	return &cloudapi.ImageStore{ID: f.newID("AddImageStore"), Name: req.Name, Provider: req.Provider}, nil
}

func (f *Cloud) AddS3(_ context.Context, req cloudapi.AddS3Request) (*cloudapi.ImageStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddS3", req); err != nil {
		return nil, err
	}
	return &cloudapi.ImageStore{ID: f.newID("AddS3"), Name: req.Bucket, Provider: "S3"}, nil
}

func (f *Cloud) DeleteImageStore(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteImageStore", req.ID, req)
}

func (f *Cloud) CreateSecondaryStagingStore(_ context.Context, req cloudapi.CreateSecondaryStagingStoreRequest) (*cloudapi.ImageStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateSecondaryStagingStore", req); err != nil {
		return nil, err
	}
	return &cloudapi.ImageStore{ID: f.newID("CreateSecondaryStagingStore"), Provider: req.Provider}, nil
}

func (f *Cloud) DeleteSecondaryStagingStore(_ context.Context, req cloudapi.DeleteRequest) error {
	return f.remove("DeleteSecondaryStagingStore", req.ID, req)
}
