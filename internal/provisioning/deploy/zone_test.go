package deploy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi/fakes"
	"github.com/imamik/dcdeploy/internal/provisioning"
	dctest "github.com/imamik/dcdeploy/internal/testing"
	"github.com/imamik/dcdeploy/internal/util/naming"
)

func newZoneTest(t *testing.T, zones ...config.Zone) (*provisioning.Context, *fakes.Cloud, *dctest.RecordingObserver) {
	t.Helper()
	b := dctest.NewTopologyBuilder()
	for _, z := range zones {
		b = b.WithZone(z)
	}
	cloud := fakes.New()
	ctx, obs := dctest.NewContext(t, b.Build(), cloud)
	return ctx, cloud, obs
}

func newTestZonesPhase() *ZonesPhase {
	p := NewZonesPhase()
	p.suffix = func() string { return "abc123" }
	return p
}

// requestsOf returns the captured requests of op as T.
func requestsOf[T any](t *testing.T, cloud *fakes.Cloud, op string) []T {
	t.Helper()
	var out []T
	for _, r := range cloud.Requests(op) {
		req, ok := r.(T)
		require.True(t, ok, "unexpected request type %T for %s", r, op)
		out = append(out, req)
	}
	return out
}

func apiError(code int, text string) error {
	return &cloudapi.APIError{Command: "test", Code: code, Text: text}
}

// hostsZone returns an Advanced zone with a single cluster holding one host per ip.
func hostsZone(ips ...string) config.Zone {
	return dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).
		WithPhysicalNetwork(dctest.PhysicalNetwork("pn1", config.TrafficGuest, config.TrafficManagement)).
		WithPod(dctest.Pod("pod1", dctest.Cluster("cluster1", ips...))).
		Build()
}

func TestZonesPhase_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "zones", NewZonesPhase().Name())
}

func TestZonesPhase_BasicZone(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.BasicZone("zone1"))

	phase := newTestZonesPhase()
	require.NoError(t, phase.Provision(ctx))

	assert.Equal(t, []provisioning.ResourceType{
		provisioning.ResourceZone,
		provisioning.ResourcePhysicalNetwork,
		provisioning.ResourceTrafficType,
		provisioning.ResourceNetwork,
		provisioning.ResourcePod,
		provisioning.ResourceVlanIPRange,
		provisioning.ResourceCluster,
		provisioning.ResourceHost,
		provisioning.ResourceStoragePool,
		provisioning.ResourceImageStore,
	}, ctx.Ledger.Order())
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceTrafficType), 2)
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceHost), 2)

	created := phase.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "zone1", created[0].Name)
	assert.Equal(t, ctx.Ledger.IDs(provisioning.ResourceZone)[0], created[0].ID)

	networks := requestsOf[cloudapi.CreateNetworkRequest](t, cloud, "CreateNetwork")
	require.Len(t, networks, 1)
	assert.Equal(t, naming.BasicGuestNetwork, networks[0].Name)
	assert.Equal(t, cloud.OfferingID(fakes.OfferingSharedWithSG), networks[0].NetworkOfferingID)

	ranges := requestsOf[cloudapi.CreateVlanIPRangeRequest](t, cloud, "CreateVlanIPRange")
	require.Len(t, ranges, 1)
	assert.False(t, ranges[0].ForVirtualNetwork)
	assert.Equal(t, ctx.Ledger.IDs(provisioning.ResourcePod)[0], ranges[0].PodID)
	assert.Equal(t, ctx.Ledger.IDs(provisioning.ResourceNetwork)[0], ranges[0].NetworkID)

	updates := requestsOf[cloudapi.UpdateZoneRequest](t, cloud, "UpdateZone")
	require.Len(t, updates, 1)
	assert.Equal(t, cloudapi.StateEnabled, updates[0].AllocationState)

	assert.Equal(t, 1, cloud.CallCount("ListHosts"))
}

func TestZonesPhase_EIPELBZone(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.EIPELBZone("zone1"))

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	networks := requestsOf[cloudapi.CreateNetworkRequest](t, cloud, "CreateNetwork")
	require.Len(t, networks, 1)
	assert.Equal(t, cloud.OfferingID(fakes.OfferingEIPELB), networks[0].NetworkOfferingID)

	ranges := requestsOf[cloudapi.CreateVlanIPRangeRequest](t, cloud, "CreateVlanIPRange")
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].ForVirtualNetwork)
	assert.Empty(t, ranges[0].PodID)
	assert.Equal(t, "10.1.2.10", ranges[0].StartIP)

	order := ctx.Ledger.Order()
	assert.Less(t, indexOf(order, provisioning.ResourceStoragePool), indexOf(order, provisioning.ResourceVlanIPRange))
}

func TestZonesPhase_AdvancedZone(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"))

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	assert.Zero(t, cloud.CallCount("CreateNetwork"))

	zones := requestsOf[cloudapi.CreateZoneRequest](t, cloud, "CreateZone")
	require.Len(t, zones, 1)
	assert.Equal(t, "10.1.1.0/24", zones[0].GuestCIDRAddress)

	ranges := requestsOf[cloudapi.CreateVlanIPRangeRequest](t, cloud, "CreateVlanIPRange")
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].ForVirtualNetwork)
	assert.Empty(t, ranges[0].NetworkID)

	assert.Equal(t, []provisioning.ResourceType{
		provisioning.ResourceZone,
		provisioning.ResourcePhysicalNetwork,
		provisioning.ResourceTrafficType,
		provisioning.ResourcePod,
		provisioning.ResourceCluster,
		provisioning.ResourceHost,
		provisioning.ResourceStoragePool,
		provisioning.ResourceVlanIPRange,
		provisioning.ResourceImageStore,
	}, ctx.Ledger.Order())
}

func TestZonesPhase_AdvancedSGZoneUsesLastRange(t *testing.T) {
	t.Parallel()
	ctx, cloud, obs := newZoneTest(t, dctest.AdvancedSGZone("zone1"))

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	zones := requestsOf[cloudapi.CreateZoneRequest](t, cloud, "CreateZone")
	require.Len(t, zones, 1)
	assert.Empty(t, zones[0].GuestCIDRAddress)

	networks := requestsOf[cloudapi.CreateNetworkRequest](t, cloud, "CreateNetwork")
	require.Len(t, networks, 1)
	assert.Equal(t, naming.SharedSGNetwork, networks[0].Name)
	assert.Equal(t, "10.1.5.10", networks[0].StartIP)
	assert.Equal(t, "105", networks[0].VLAN)

	// Only the pod guest range is created as a VLAN range.
	ranges := requestsOf[cloudapi.CreateVlanIPRangeRequest](t, cloud, "CreateVlanIPRange")
	require.Len(t, ranges, 1)
	assert.Equal(t, "10.1.9.10", ranges[0].StartIP)
	assert.Equal(t, ctx.Ledger.IDs(provisioning.ResourceNetwork)[0], ranges[0].NetworkID)

	assert.True(t, obs.HasMessage("1 IP ranges of zone zone1 are not assigned"))
	assert.Len(t, ctx.Config.Zones[0].IPRanges, 2)
}

func TestZonesPhase_OfferingNotFound(t *testing.T) {
	t.Parallel()
	zone := dctest.BasicZone("zone1")
	zone.NetworkOfferingName = "NoSuchOffering"
	ctx, cloud, _ := newZoneTest(t, zone)

	err := newTestZonesPhase().Provision(ctx)
	require.ErrorIs(t, err, ErrOfferingNotFound)
	assert.Zero(t, cloud.CallCount("CreateNetwork"))
	assert.Zero(t, cloud.CallCount("CreatePod"))
}

func TestZonesPhase_DisabledZoneWithDetails(t *testing.T) {
	t.Parallel()
	zone := dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).
		WithPhysicalNetwork(dctest.PhysicalNetwork("pn1", config.TrafficGuest)).
		WithDetail("router.ram.size", "512").
		Disabled().
		Build()
	ctx, cloud, _ := newZoneTest(t, zone)

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	updates := requestsOf[cloudapi.UpdateZoneRequest](t, cloud, "UpdateZone")
	require.Len(t, updates, 1)
	assert.Empty(t, updates[0].AllocationState)
	assert.Equal(t, []cloudapi.KeyValue{{Key: "router.ram.size", Value: "512"}}, updates[0].Details)
}

func TestZonesPhase_ZoneNameConflictRetries(t *testing.T) {
	t.Parallel()
	ctx, cloud, obs := newZoneTest(t, dctest.AdvancedZone("zone1"))
	cloud.ReserveZoneName("zone1")

	phase := newTestZonesPhase()
	require.NoError(t, phase.Provision(ctx))

	zones := requestsOf[cloudapi.CreateZoneRequest](t, cloud, "CreateZone")
	require.Len(t, zones, 2)
	assert.Equal(t, "zone1", zones[0].Name)
	assert.Equal(t, "zone1_abc123", zones[1].Name)

	assert.Equal(t, []CreatedZone{{Name: "zone1_abc123", ID: ctx.Ledger.IDs(provisioning.ResourceZone)[0]}}, phase.Created())
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceZone), 1)
	assert.True(t, obs.HasMessage("retrying as zone1_abc123"))
}

func TestZonesPhase_ZoneMissingIDRetries(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"))
	cloud.ReturnNoID("CreateZone")

	phase := newTestZonesPhase()
	require.NoError(t, phase.Provision(ctx))

	assert.Equal(t, 2, cloud.CallCount("CreateZone"))
	require.Len(t, phase.Created(), 1)
	assert.Equal(t, "zone1_abc123", phase.Created()[0].Name)
}

func TestZonesPhase_ZoneRetryFails(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"))
	cloud.ReserveZoneName("zone1")
	cloud.ReserveZoneName("zone1_abc123")

	err := newTestZonesPhase().Provision(ctx)
	require.Error(t, err)
	assert.True(t, cloudapi.IsNameConflict(err))
	assert.Equal(t, 2, cloud.CallCount("CreateZone"))
	assert.Zero(t, ctx.Ledger.Len())
	assert.Zero(t, cloud.CallCount("CreatePhysicalNetwork"))
}

func TestZonesPhase_ZoneRetryWithoutID(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"))
	cloud.ReturnNoID("CreateZone")
	cloud.ReturnNoID("CreateZone")

	err := newTestZonesPhase().Provision(ctx)
	require.ErrorIs(t, err, ErrMissingID)
	assert.Zero(t, ctx.Ledger.Len())
}

func TestZonesPhase_ZoneOtherErrorsAreNotRetried(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "api error", err: apiError(cloudapi.ErrCodeInternalError, "internal error")},
		{name: "transport error", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, cloud, obs := newZoneTest(t, dctest.AdvancedZone("zone1"))
			cloud.FailNext("CreateZone", tt.err)

			err := newTestZonesPhase().Provision(ctx)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, cloud.CallCount("CreateZone"))
			assert.Len(t, obs.Events(provisioning.EventResourceFailed), 1)
		})
	}
}

func TestZonesPhase_MultipleZonesInOrder(t *testing.T) {
	t.Parallel()
	ctx, cloud, obs := newZoneTest(t, dctest.AdvancedZone("zone1"), dctest.BasicZone("zone2"))

	phase := newTestZonesPhase()
	require.NoError(t, phase.Provision(ctx))

	created := phase.Created()
	require.Len(t, created, 2)
	assert.Equal(t, "zone1", created[0].Name)
	assert.Equal(t, "zone2", created[1].Name)
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceZone), 2)
	assert.Equal(t, 2, cloud.CallCount("CreatePhysicalNetwork"))

	progress := obs.Events(provisioning.EventProgress)
	require.NotEmpty(t, progress)
	assert.Equal(t, "2/2", progress[len(progress)-1].Message)
}

func TestZonesPhase_FailureStopsLaterZones(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"), dctest.AdvancedZone("zone2"))
	cloud.FailNext("CreatePod", apiError(cloudapi.ErrCodeParamError, "bad gateway"))

	err := newTestZonesPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create Pod pod1")
	assert.Equal(t, 1, cloud.CallCount("CreateZone"))
	assert.Empty(t, ctx.Ledger.IDs(provisioning.ResourcePod))
}

func TestPhysicalNetwork_ProvidersEnabled(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"))

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	elements := requestsOf[cloudapi.ConfigureElementRequest](t, cloud, "ConfigureVirtualRouterElement")
	require.Len(t, elements, 1)
	assert.True(t, elements[0].Enabled)

	providers := requestsOf[cloudapi.UpdateNetworkServiceProviderRequest](t, cloud, "UpdateNetworkServiceProvider")
	require.Len(t, providers, 2)
	for _, p := range providers {
		assert.Equal(t, cloudapi.StateEnabled, p.State)
	}

	networks := requestsOf[cloudapi.UpdatePhysicalNetworkRequest](t, cloud, "UpdatePhysicalNetwork")
	require.Len(t, networks, 1)
	assert.Equal(t, cloudapi.StateEnabled, networks[0].State)
	assert.Equal(t, ctx.Ledger.IDs(provisioning.ResourcePhysicalNetwork)[0], networks[0].ID)
}

func TestPhysicalNetwork_InternalLoadBalancer(t *testing.T) {
	t.Parallel()
	pn := dctest.PhysicalNetwork("pn1", config.TrafficGuest)
	pn.Providers = []config.Provider{{Name: config.ProviderInternalLbVM}}
	zone := dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).WithPhysicalNetwork(pn).Build()
	ctx, cloud, _ := newZoneTest(t, zone)

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	assert.Equal(t, 1, cloud.CallCount("ListInternalLoadBalancerElements"))
	assert.Equal(t, 1, cloud.CallCount("ConfigureInternalLoadBalancerElement"))
	assert.Zero(t, cloud.CallCount("ConfigureVirtualRouterElement"))
}

func TestPhysicalNetwork_NiciraNvp(t *testing.T) {
	t.Parallel()
	pn := dctest.PhysicalNetwork("pn1", config.TrafficGuest)
	pn.Providers = []config.Provider{{
		Name: config.ProviderNiciraNvp,
		Devices: []config.Device{
			{Hostname: "nvp1.example.com", Username: "admin", Password: "secret", TransportZoneUUID: "tz-1"},
		},
	}}
	zone := dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).WithPhysicalNetwork(pn).Build()
	ctx, cloud, _ := newZoneTest(t, zone)

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	assert.Equal(t, 1, cloud.CallCount("AddNetworkServiceProvider"))
	nspIDs := ctx.Ledger.IDs(provisioning.ResourceNetworkServiceProvider)
	require.Len(t, nspIDs, 1)
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceNiciraNvpDevice), 1)

	devices := requestsOf[cloudapi.AddNiciraNvpDeviceRequest](t, cloud, "AddNiciraNvpDevice")
	require.Len(t, devices, 1)
	assert.Equal(t, "tz-1", devices[0].TransportZoneUUID)

	updates := requestsOf[cloudapi.UpdateNetworkServiceProviderRequest](t, cloud, "UpdateNetworkServiceProvider")
	require.Len(t, updates, 1)
	assert.Equal(t, nspIDs[0], updates[0].ID)
}

func TestPhysicalNetwork_UnknownProvider(t *testing.T) {
	t.Parallel()

	t.Run("without devices is skipped", func(t *testing.T) {
		t.Parallel()
		pn := dctest.PhysicalNetwork("pn1", config.TrafficGuest)
		pn.Providers = []config.Provider{{Name: "Netscaler"}}
		zone := dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).WithPhysicalNetwork(pn).Build()
		ctx, cloud, obs := newZoneTest(t, zone)

		require.NoError(t, newTestZonesPhase().Provision(ctx))
		assert.True(t, obs.HasMessage("Provider Netscaler is not available"))
		assert.Zero(t, cloud.CallCount("AddNetworkServiceProvider"))
	})

	t.Run("with devices fails", func(t *testing.T) {
		t.Parallel()
		pn := dctest.PhysicalNetwork("pn1", config.TrafficGuest)
		pn.Providers = []config.Provider{{Name: "Netscaler", Devices: []config.Device{{Hostname: "ns1"}}}}
		zone := dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).WithPhysicalNetwork(pn).Build()
		ctx, _, _ := newZoneTest(t, zone)

		err := newTestZonesPhase().Provision(ctx)
		require.ErrorIs(t, err, ErrUnsupportedProvider)
	})
}

func TestPhysicalNetwork_TrafficTypeWithoutIDIsSkipped(t *testing.T) {
	t.Parallel()
	ctx, cloud, obs := newZoneTest(t, dctest.AdvancedZone("zone1"))
	cloud.ReturnNoID("AddTrafficType")

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	assert.Equal(t, 3, cloud.CallCount("AddTrafficType"))
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceTrafficType), 2)
	assert.Len(t, obs.Events(provisioning.EventResourceFailed), 1)
}

func TestPhysicalNetwork_MissingIDEscalates(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"))
	cloud.ReturnNoID("CreatePhysicalNetwork")

	err := newTestZonesPhase().Provision(ctx)
	require.ErrorIs(t, err, ErrMissingID)
	assert.Zero(t, cloud.CallCount("AddTrafficType"))
	assert.Equal(t, []provisioning.ResourceType{provisioning.ResourceZone}, ctx.Ledger.Order())
}

func TestAddHosts_PartialFailure(t *testing.T) {
	t.Parallel()
	ctx, cloud, obs := newZoneTest(t, hostsZone("10.0.0.1", "10.0.0.2", "10.0.0.3"))
	cloud.FailNext("AddHost", apiError(cloudapi.ErrCodeInternalError, "host unreachable"))

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	assert.Equal(t, 3, cloud.CallCount("AddHost"))
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceHost), 2)
	assert.True(t, obs.HasMessage("1 of 3 hosts failed in cluster cluster1"))
	assert.Equal(t, 1, cloud.CallCount("CreateStoragePool"))
}

func TestAddHosts_MissingIDCountsAsFailure(t *testing.T) {
	t.Parallel()
	ctx, cloud, obs := newZoneTest(t, hostsZone("10.0.0.1", "10.0.0.2"))
	cloud.ReturnNoID("AddHost")

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceHost), 1)
	assert.True(t, obs.HasMessage("1 of 2 hosts failed"))
}

func TestAddHosts_AllFailed(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, hostsZone("10.0.0.1", "10.0.0.2"))
	cloud.FailNext("AddHost", apiError(cloudapi.ErrCodeInternalError, "host unreachable"))
	cloud.FailNext("AddHost", errors.New("connection reset"))

	err := newTestZonesPhase().Provision(ctx)
	require.ErrorIs(t, err, ErrAllHostsFailed)
	assert.Contains(t, err.Error(), "cluster1")
	assert.Zero(t, cloud.CallCount("ListHosts"))
	assert.Zero(t, cloud.CallCount("CreateStoragePool"))
	assert.Empty(t, ctx.Ledger.IDs(provisioning.ResourceHost))
	assert.Len(t, ctx.Ledger.IDs(provisioning.ResourceCluster), 1)
}

func TestWaitForHosts(t *testing.T) {
	t.Parallel()

	t.Run("gives up and continues", func(t *testing.T) {
		t.Parallel()
		ctx, cloud, obs := newZoneTest(t, hostsZone("10.0.0.1"))
		cloud.HostState = "Alert"

		require.NoError(t, newTestZonesPhase().Provision(ctx))

		assert.Equal(t, config.DefaultHostUpAttempts, cloud.CallCount("ListHosts"))
		gaveUp := obs.Events(provisioning.EventWaitGaveUp)
		require.Len(t, gaveUp, 1)
		assert.Equal(t, "cluster1", gaveUp[0].Resource)
		assert.Equal(t, 1, cloud.CallCount("CreateStoragePool"))
	})

	t.Run("converges on a later poll", func(t *testing.T) {
		t.Parallel()
		ctx, cloud, obs := newZoneTest(t, hostsZone("10.0.0.1", "10.0.0.2"))
		cloud.HostState = "Connecting"
		cloud.HostUpAfter = 2

		require.NoError(t, newTestZonesPhase().Provision(ctx))

		assert.Equal(t, 2, cloud.CallCount("ListHosts"))
		assert.Empty(t, obs.Events(provisioning.EventWaitGaveUp))
		assert.True(t, obs.HasMessage("All hosts of cluster cluster1 are up"))
	})

	t.Run("listing failure escalates", func(t *testing.T) {
		t.Parallel()
		ctx, cloud, _ := newZoneTest(t, hostsZone("10.0.0.1"))
		cloud.FailNext("ListHosts", errors.New("connection reset"))

		err := newTestZonesPhase().Provision(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list hosts of cluster cluster1")
		assert.Zero(t, cloud.CallCount("CreateStoragePool"))
	})
}

func TestAllUp(t *testing.T) {
	t.Parallel()

	assert.False(t, allUp(nil))
	assert.True(t, allUp([]cloudapi.Host{{State: cloudapi.StateUp}, {State: cloudapi.StateUp}}))
	assert.False(t, allUp([]cloudapi.Host{{State: cloudapi.StateUp}, {State: "Disconnected"}}))
}

func TestCreatePods_VmwareDc(t *testing.T) {
	t.Parallel()
	pod := dctest.Pod("pod1", dctest.Cluster("cluster1"))
	pod.VmwareDC = &config.VmwareDC{Name: "dc1", VCenter: "vcenter.example.com", Username: "admin"}
	zone := dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).
		WithPhysicalNetwork(dctest.PhysicalNetwork("pn1", config.TrafficGuest)).
		WithPod(pod).
		Build()

	t.Run("registers the zone id", func(t *testing.T) {
		t.Parallel()
		ctx, cloud, _ := newZoneTest(t, zone)

		require.NoError(t, newTestZonesPhase().Provision(ctx))

		zoneID := ctx.Ledger.IDs(provisioning.ResourceZone)[0]
		assert.Equal(t, []string{zoneID}, ctx.Ledger.IDs(provisioning.ResourceVmwareDc))
		order := ctx.Ledger.Order()
		assert.Less(t, indexOf(order, provisioning.ResourceVmwareDc), indexOf(order, provisioning.ResourceCluster))

		reqs := requestsOf[cloudapi.AddVmwareDcRequest](t, cloud, "AddVmwareDc")
		require.Len(t, reqs, 1)
		assert.Equal(t, "vcenter.example.com", reqs[0].VCenter)
	})

	t.Run("missing id escalates", func(t *testing.T) {
		t.Parallel()
		ctx, cloud, _ := newZoneTest(t, zone)
		cloud.ReturnNoID("AddVmwareDc")

		err := newTestZonesPhase().Provision(ctx)
		require.ErrorIs(t, err, ErrMissingID)
		assert.Zero(t, cloud.CallCount("AddCluster"))
	})
}

func TestCreateCluster_WithoutHosts(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, hostsZone())

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	assert.Zero(t, cloud.CallCount("AddHost"))
	assert.Zero(t, cloud.CallCount("ListHosts"))

	pools := requestsOf[cloudapi.CreateStoragePoolRequest](t, cloud, "CreateStoragePool")
	require.Len(t, pools, 1)
	assert.Equal(t, ctx.Ledger.IDs(provisioning.ResourceCluster)[0], pools[0].ClusterID)
	assert.Empty(t, pools[0].Scope)
}

func TestZoneStorage_Order(t *testing.T) {
	t.Parallel()
	zone := dctest.NewZoneBuilder("zone1", config.NetworkTypeAdvanced).
		WithPhysicalNetwork(dctest.PhysicalNetwork("pn1", config.TrafficGuest)).
		WithPrimaryStorage(config.PrimaryStorage{Name: "zone-primary", URL: "nfs://10.0.0.9/primary", Scope: config.ScopeZone, Hypervisor: "KVM"}).
		WithCacheStorage(config.CacheStorage{URL: "nfs://10.0.0.9/cache", Provider: "NFS"}).
		WithSecondaryStorage(config.SecondaryStorage{
			URL:      "http://s3.example.com",
			Provider: "S3",
			Details:  map[string]string{"bucket": "templates"},
		}).
		Build()
	ctx, cloud, _ := newZoneTest(t, zone)

	require.NoError(t, newTestZonesPhase().Provision(ctx))

	order := ctx.Ledger.Order()
	assert.Less(t, indexOf(order, provisioning.ResourceCacheStorage), indexOf(order, provisioning.ResourceImageStore))
	assert.Less(t, indexOf(order, provisioning.ResourceImageStore), indexOf(order, provisioning.ResourceStoragePool))

	stores := requestsOf[cloudapi.AddImageStoreRequest](t, cloud, "AddImageStore")
	require.Len(t, stores, 1)
	assert.Empty(t, stores[0].ZoneID)
	assert.Equal(t, []cloudapi.KeyValue{{Key: "bucket", Value: "templates"}}, stores[0].Details)

	pools := requestsOf[cloudapi.CreateStoragePoolRequest](t, cloud, "CreateStoragePool")
	require.Len(t, pools, 1)
	assert.Equal(t, config.ScopeZone, pools[0].Scope)
	assert.Equal(t, "KVM", pools[0].Hypervisor)
}

func TestZoneStorage_FailureEscalates(t *testing.T) {
	t.Parallel()
	ctx, cloud, _ := newZoneTest(t, dctest.AdvancedZone("zone1"))
	cloud.FailNext("AddImageStore", apiError(cloudapi.ErrCodeParamError, "invalid url"))

	err := newTestZonesPhase().Provision(ctx)
	require.Error(t, err)
	assert.True(t, cloudapi.IsAPIError(err))
	assert.Zero(t, cloud.CallCount("UpdateZone"))
}

func indexOf(order []provisioning.ResourceType, typ provisioning.ResourceType) int {
	for i, t := range order {
		if t == typ {
			return i
		}
	}
	return -1
}
