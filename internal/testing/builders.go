package testing

import (
	"slices"

	"github.com/imamik/dcdeploy/internal/config"
)

// TopologyBuilder provides a fluent interface for constructing test topologies.
// Each method returns a new builder (immutable) for chaining.
type TopologyBuilder struct {
	cfg config.Config
}

// NewTopologyBuilder creates an empty topology pointing at a local management server.
func NewTopologyBuilder() *TopologyBuilder {
	return &TopologyBuilder{
		cfg: config.Config{
			ManagementServers: []config.ManagementServer{{
				Host:      "127.0.0.1",
				Port:      8080,
				APIKey:    "test-api-key",
				SecretKey: "test-secret-key",
			}},
		},
	}
}

// WithZone appends a zone.
func (b *TopologyBuilder) WithZone(zone config.Zone) *TopologyBuilder {
	nb := b.clone()
	nb.cfg.Zones = append(nb.cfg.Zones, zone)
	return nb
}

// WithGlobalConfig appends a global configuration override.
func (b *TopologyBuilder) WithGlobalConfig(name, value string) *TopologyBuilder {
	nb := b.clone()
	nb.cfg.GlobalConfig = append(nb.cfg.GlobalConfig, config.KeyValue{Name: name, Value: value})
	return nb
}

// WithS3 sets the S3 endpoint.
func (b *TopologyBuilder) WithS3(s3 config.S3Config) *TopologyBuilder {
	nb := b.clone()
	nb.cfg.S3 = &s3
	return nb
}

// WithCleanupOnFailure sets the rollback policy.
func (b *TopologyBuilder) WithCleanupOnFailure(enabled bool) *TopologyBuilder {
	nb := b.clone()
	nb.cfg.CleanupOnFailure = &enabled
	return nb
}

// Build returns the topology with defaults applied.
func (b *TopologyBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	cfg.ApplyDefaults()
	return &cfg
}

func (b *TopologyBuilder) clone() *TopologyBuilder {
	cfg := b.cfg
	cfg.ManagementServers = slices.Clone(b.cfg.ManagementServers)
	cfg.GlobalConfig = slices.Clone(b.cfg.GlobalConfig)
	cfg.Zones = slices.Clone(b.cfg.Zones)
	if b.cfg.S3 != nil {
		s3 := *b.cfg.S3
		cfg.S3 = &s3
	}
	return &TopologyBuilder{cfg: cfg}
}

// ZoneBuilder provides a fluent interface for constructing a single zone.
type ZoneBuilder struct {
	zone config.Zone
}

// NewZoneBuilder starts a zone of the given network type.
func NewZoneBuilder(name, networkType string) *ZoneBuilder {
	return &ZoneBuilder{zone: config.Zone{
		Name:         name,
		DNS1:         "8.8.8.8",
		InternalDNS1: "10.0.0.2",
		NetworkType:  networkType,
	}}
}

// WithSecurityGroups enables security groups.
func (b *ZoneBuilder) WithSecurityGroups() *ZoneBuilder {
	nb := b.clone()
	nb.zone.SecurityGroupEnabled = true
	return nb
}

// WithGuestCIDR sets the guest CIDR of an Advanced zone.
func (b *ZoneBuilder) WithGuestCIDR(cidr string) *ZoneBuilder {
	nb := b.clone()
	nb.zone.GuestCIDRAddress = cidr
	return nb
}

// WithOffering overrides the network offering name.
func (b *ZoneBuilder) WithOffering(name string) *ZoneBuilder {
	nb := b.clone()
	nb.zone.NetworkOfferingName = name
	return nb
}

// WithPhysicalNetwork appends a physical network.
func (b *ZoneBuilder) WithPhysicalNetwork(pn config.PhysicalNetwork) *ZoneBuilder {
	nb := b.clone()
	nb.zone.PhysicalNetworks = append(nb.zone.PhysicalNetworks, pn)
	return nb
}

// WithPod appends a pod.
func (b *ZoneBuilder) WithPod(pod config.Pod) *ZoneBuilder {
	nb := b.clone()
	nb.zone.Pods = append(nb.zone.Pods, pod)
	return nb
}

// WithIPRange appends a zone IP range.
func (b *ZoneBuilder) WithIPRange(r config.IPRange) *ZoneBuilder {
	nb := b.clone()
	nb.zone.IPRanges = append(nb.zone.IPRanges, r)
	return nb
}

// WithSecondaryStorage appends an image store.
func (b *ZoneBuilder) WithSecondaryStorage(s config.SecondaryStorage) *ZoneBuilder {
	nb := b.clone()
	nb.zone.SecondaryStorages = append(nb.zone.SecondaryStorages, s)
	return nb
}

// WithCacheStorage appends a staging store.
func (b *ZoneBuilder) WithCacheStorage(c config.CacheStorage) *ZoneBuilder {
	nb := b.clone()
	nb.zone.CacheStorages = append(nb.zone.CacheStorages, c)
	return nb
}

// WithPrimaryStorage appends a zone-wide primary storage.
func (b *ZoneBuilder) WithPrimaryStorage(ps config.PrimaryStorage) *ZoneBuilder {
	nb := b.clone()
	nb.zone.PrimaryStorages = append(nb.zone.PrimaryStorages, ps)
	return nb
}

// WithDetail appends a zone detail.
func (b *ZoneBuilder) WithDetail(key, value string) *ZoneBuilder {
	nb := b.clone()
	nb.zone.Details = append(nb.zone.Details, config.ZoneDetail{Key: key, Value: value})
	return nb
}

// Disabled leaves the zone disabled after provisioning.
func (b *ZoneBuilder) Disabled() *ZoneBuilder {
	nb := b.clone()
	enabled := false
	nb.zone.Enabled = &enabled
	return nb
}

// Build returns the zone.
func (b *ZoneBuilder) Build() config.Zone {
	return b.clone().zone
}

func (b *ZoneBuilder) clone() *ZoneBuilder {
	z := b.zone
	z.PhysicalNetworks = slices.Clone(b.zone.PhysicalNetworks)
	z.Pods = slices.Clone(b.zone.Pods)
	z.IPRanges = slices.Clone(b.zone.IPRanges)
	z.SecondaryStorages = slices.Clone(b.zone.SecondaryStorages)
	z.CacheStorages = slices.Clone(b.zone.CacheStorages)
	z.PrimaryStorages = slices.Clone(b.zone.PrimaryStorages)
	z.Details = slices.Clone(b.zone.Details)
	return &ZoneBuilder{zone: z}
}
