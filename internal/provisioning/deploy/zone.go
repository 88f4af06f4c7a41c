package deploy

import (
	"fmt"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/util/naming"
)

const zonesPhase = "zones"

// CreatedZone is a zone created during the run, under the name it was given.
type CreatedZone struct {
	Name string
	ID   string
}

// ZonesPhase builds every zone of the topology in declaration order.
type ZonesPhase struct {
	suffix  func() string
	created []CreatedZone
}

// NewZonesPhase creates a zones phase that renames conflicting zones with a random suffix.
func NewZonesPhase() *ZonesPhase {
	return &ZonesPhase{suffix: naming.RandomSuffix}
}

// Name implements the provisioning.Phase interface.
func (p *ZonesPhase) Name() string {
	return zonesPhase
}

// Created returns the zones created so far.
func (p *ZonesPhase) Created() []CreatedZone {
	return append([]CreatedZone(nil), p.created...)
}

// Provision implements the provisioning.Phase interface.
func (p *ZonesPhase) Provision(ctx *provisioning.Context) error {
	for i := range ctx.Config.Zones {
		zone := &ctx.Config.Zones[i]
		ctx.Observer.Progress(zonesPhase, i, len(ctx.Config.Zones))
		if err := p.provisionZone(ctx, zone); err != nil {
			return err
		}
	}
	ctx.Observer.Progress(zonesPhase, len(ctx.Config.Zones), len(ctx.Config.Zones))
	return nil
}

func (p *ZonesPhase) provisionZone(ctx *provisioning.Context, zone *config.Zone) error {
	zoneID, err := p.createZone(ctx, zone)
	if err != nil {
		return err
	}

	for i := range zone.PhysicalNetworks {
		if err := provisionPhysicalNetwork(ctx, zoneID, &zone.PhysicalNetworks[i]); err != nil {
			return err
		}
	}

	if err := provisionZoneNetworks(ctx, zoneID, zone); err != nil {
		return err
	}

	if err := provisionZoneStorage(ctx, zoneID, zone); err != nil {
		return err
	}

	if zone.IsEnabled() {
		_, err := ctx.Client.UpdateZone(ctx, cloudapi.UpdateZoneRequest{ID: zoneID, AllocationState: cloudapi.StateEnabled})
		if err != nil {
			return fmt.Errorf("failed to enable zone %s: %w", zone.Name, err)
		}
		ctx.Observer.Printf("[Zones] Zone %s enabled", zone.Name)
	}

	if len(zone.Details) > 0 {
		if _, err := ctx.Client.UpdateZone(ctx, zoneDetailsRequest(zoneID, zone.Details)); err != nil {
			return fmt.Errorf("failed to update details of zone %s: %w", zone.Name, err)
		}
	}
	return nil
}

// createZone creates the zone, retrying once under a suffixed name when the
// API reports a name conflict or returns no id.
func (p *ZonesPhase) createZone(ctx *provisioning.Context, zone *config.Zone) (string, error) {
	req := zoneRequest(zone)
	provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceZone, req.Name)

	resp, err := ctx.Client.CreateZone(ctx, req)
	switch {
	case err == nil && resp.ID != "":
		register(ctx, zonesPhase, provisioning.ResourceZone, req.Name, resp.ID)
		p.created = append(p.created, CreatedZone{Name: req.Name, ID: resp.ID})
		return resp.ID, nil
	case err != nil && !cloudapi.IsNameConflict(err):
		return "", fail(ctx, zonesPhase, provisioning.ResourceZone, req.Name, err)
	}

	retryName := naming.RetryZone(zone.Name, p.suffix())
	ctx.Observer.Printf("[Zones] Zone %s could not be created, retrying as %s", zone.Name, retryName)
	req.Name = retryName

	resp, err = ctx.Client.CreateZone(ctx, req)
	if err != nil {
		return "", fail(ctx, zonesPhase, provisioning.ResourceZone, retryName, err)
	}
	id, err := recordRequired(ctx, zonesPhase, provisioning.ResourceZone, retryName, resp.ID)
	if err != nil {
		return "", err
	}
	p.created = append(p.created, CreatedZone{Name: retryName, ID: id})
	return id, nil
}

// provisionZoneNetworks creates the networks, pods and IP ranges the zone's network type calls for.
func provisionZoneNetworks(ctx *provisioning.Context, zoneID string, zone *config.Zone) error {
	switch {
	case zone.NetworkType == config.NetworkTypeBasic:
		networkID, err := createBasicNetwork(ctx, zoneID, zone)
		if err != nil {
			return err
		}
		if err := createPods(ctx, zoneID, zone.Pods, networkID); err != nil {
			return err
		}
		if zone.IsEIPELB() {
			return createVlanIPRanges(ctx, vlanRangeScope{zoneID: zoneID, forVirtualNetwork: true}, zone.IPRanges)
		}
		return nil

	case zone.SecurityGroupEnabled:
		networkID, unused, err := createSharedSGNetwork(ctx, zoneID, zone)
		if err != nil {
			return err
		}
		if len(unused) > 0 {
			ctx.Observer.Printf("[Zones] %d IP ranges of zone %s are not assigned to the shared network", len(unused), zone.Name)
		}
		return createPods(ctx, zoneID, zone.Pods, networkID)

	default:
		if err := createPods(ctx, zoneID, zone.Pods, ""); err != nil {
			return err
		}
		return createVlanIPRanges(ctx, vlanRangeScope{zoneID: zoneID, forVirtualNetwork: true}, zone.IPRanges)
	}
}
