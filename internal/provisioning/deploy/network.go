package deploy

import (
	"fmt"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
	"github.com/imamik/dcdeploy/internal/util/naming"
)

// Default shared network offerings.
const (
	OfferingSharedEIPELB = "DefaultSharedNetscalerEIPandELBNetworkOffering"
	OfferingSharedSG     = "DefaultSharedNetworkOfferingWithSGService"
)

// basicOffering picks the guest network offering of a Basic zone.
func basicOffering(zone *config.Zone) string {
	switch {
	case zone.NetworkOfferingName != "":
		return zone.NetworkOfferingName
	case zone.HasPublicTraffic():
		return OfferingSharedEIPELB
	default:
		return OfferingSharedSG
	}
}

func sharedSGOffering(zone *config.Zone) string {
	if zone.NetworkOfferingName != "" {
		return zone.NetworkOfferingName
	}
	return OfferingSharedSG
}

func resolveOffering(ctx *provisioning.Context, name string) (string, error) {
	offerings, err := ctx.Client.ListNetworkOfferings(ctx, cloudapi.ListNetworkOfferingsRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("failed to list network offering %s: %w", name, err)
	}
	if len(offerings) == 0 || offerings[0].ID == "" {
		return "", fmt.Errorf("%s: %w", name, ErrOfferingNotFound)
	}
	return offerings[0].ID, nil
}

// createBasicNetwork creates the guest network every pod of a Basic zone attaches to.
func createBasicNetwork(ctx *provisioning.Context, zoneID string, zone *config.Zone) (string, error) {
	offeringID, err := resolveOffering(ctx, basicOffering(zone))
	if err != nil {
		return "", err
	}
	return createNetwork(ctx, cloudapi.CreateNetworkRequest{
		ZoneID:            zoneID,
		Name:              naming.BasicGuestNetwork,
		DisplayText:       naming.BasicGuestNetwork,
		NetworkOfferingID: offeringID,
	})
}

// createSharedSGNetwork creates the shared network of an Advanced zone with
// security groups. It consumes the zone's last IP range and returns the others.
func createSharedSGNetwork(ctx *provisioning.Context, zoneID string, zone *config.Zone) (string, []config.IPRange, error) {
	offeringID, err := resolveOffering(ctx, sharedSGOffering(zone))
	if err != nil {
		return "", nil, err
	}

	req := cloudapi.CreateNetworkRequest{
		ZoneID:            zoneID,
		Name:              naming.SharedSGNetwork,
		DisplayText:       naming.SharedSGNetwork,
		NetworkOfferingID: offeringID,
	}
	last, rest := takeLastRange(zone.IPRanges)
	if last != nil {
		req.StartIP = last.StartIP
		req.EndIP = last.EndIP
		req.Gateway = last.Gateway
		req.Netmask = last.Netmask
		req.VLAN = last.VLAN
	}

	id, err := createNetwork(ctx, req)
	if err != nil {
		return "", nil, err
	}
	return id, rest, nil
}

// takeLastRange splits off the last range without touching the caller's slice.
func takeLastRange(ranges []config.IPRange) (*config.IPRange, []config.IPRange) {
	if len(ranges) == 0 {
		return nil, nil
	}
	last := ranges[len(ranges)-1]
	rest := make([]config.IPRange, len(ranges)-1)
	copy(rest, ranges)
	return &last, rest
}

func createNetwork(ctx *provisioning.Context, req cloudapi.CreateNetworkRequest) (string, error) {
	provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourceNetwork, req.Name)
	resp, err := ctx.Client.CreateNetwork(ctx, req)
	if err != nil {
		return "", fail(ctx, zonesPhase, provisioning.ResourceNetwork, req.Name, err)
	}
	return recordRequired(ctx, zonesPhase, provisioning.ResourceNetwork, req.Name, resp.ID)
}

// createVlanIPRanges adds each range under scope. A range created without an id is skipped.
func createVlanIPRanges(ctx *provisioning.Context, scope vlanRangeScope, ranges []config.IPRange) error {
	for i := range ranges {
		r := &ranges[i]
		name := fmt.Sprintf("%s-%s", r.StartIP, r.EndIP)
		resp, err := ctx.Client.CreateVlanIPRange(ctx, vlanIPRangeRequest(scope, r))
		if err != nil {
			return fail(ctx, zonesPhase, provisioning.ResourceVlanIPRange, name, err)
		}
		recordOptional(ctx, zonesPhase, provisioning.ResourceVlanIPRange, name, resp.ID)
	}
	return nil
}
