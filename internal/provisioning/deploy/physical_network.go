package deploy

import (
	"context"
	"fmt"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/cloudapi"
	"github.com/imamik/dcdeploy/internal/provisioning"
)

// provisionPhysicalNetwork creates the network, its traffic types and providers, then enables it.
func provisionPhysicalNetwork(ctx *provisioning.Context, zoneID string, pn *config.PhysicalNetwork) error {
	provisioning.LogResourceCreating(ctx.Observer, zonesPhase, provisioning.ResourcePhysicalNetwork, pn.Name)
	resp, err := ctx.Client.CreatePhysicalNetwork(ctx, physicalNetworkRequest(zoneID, pn))
	if err != nil {
		return fail(ctx, zonesPhase, provisioning.ResourcePhysicalNetwork, pn.Name, err)
	}
	id, err := recordRequired(ctx, zonesPhase, provisioning.ResourcePhysicalNetwork, pn.Name, resp.ID)
	if err != nil {
		return err
	}

	for i := range pn.TrafficTypes {
		tt := &pn.TrafficTypes[i]
		resp, err := ctx.Client.AddTrafficType(ctx, trafficTypeRequest(id, tt))
		if err != nil {
			return fail(ctx, zonesPhase, provisioning.ResourceTrafficType, tt.Type, err)
		}
		recordOptional(ctx, zonesPhase, provisioning.ResourceTrafficType, tt.Type, resp.ID)
	}

	for i := range pn.Providers {
		if err := configureProvider(ctx, id, &pn.Providers[i]); err != nil {
			return err
		}
	}

	_, err = ctx.Client.UpdatePhysicalNetwork(ctx, cloudapi.UpdatePhysicalNetworkRequest{
		ID:    id,
		State: cloudapi.StateEnabled,
		VLAN:  pn.VLAN,
	})
	if err != nil {
		return fmt.Errorf("failed to enable physical network %s: %w", pn.Name, err)
	}
	ctx.Observer.Printf("[Zones] Physical network %s enabled", pn.Name)
	return nil
}

// configureProvider enables a provider the control plane created with the
// physical network, or adds a device provider and its devices.
func configureProvider(ctx *provisioning.Context, physicalNetworkID string, provider *config.Provider) error {
	listed, err := ctx.Client.ListNetworkServiceProviders(ctx, cloudapi.ListNetworkServiceProvidersRequest{
		PhysicalNetworkID: physicalNetworkID,
		Name:              provider.Name,
		State:             cloudapi.StateDisabled,
	})
	if err != nil {
		return fmt.Errorf("failed to list provider %s: %w", provider.Name, err)
	}

	if len(listed) > 0 {
		nsp := listed[0]
		switch provider.Name {
		case config.ProviderVirtualRouter, config.ProviderVpcVirtualRouter:
			err = enableElement(ctx, provider.Name, nsp.ID, ctx.Client.ListVirtualRouterElements, ctx.Client.ConfigureVirtualRouterElement)
		case config.ProviderInternalLbVM:
			err = enableElement(ctx, provider.Name, nsp.ID, ctx.Client.ListInternalLoadBalancerElements, ctx.Client.ConfigureInternalLoadBalancerElement)
		}
		if err != nil {
			return err
		}
		return enableProvider(ctx, provider.Name, nsp.ID)
	}

	if provider.Name != config.ProviderNiciraNvp {
		if len(provider.Devices) > 0 {
			return fmt.Errorf("provider %s: %w", provider.Name, ErrUnsupportedProvider)
		}
		ctx.Observer.Printf("[Zones] Provider %s is not available on physical network %s, skipping", provider.Name, physicalNetworkID)
		return nil
	}

	resp, err := ctx.Client.AddNetworkServiceProvider(ctx, cloudapi.AddNetworkServiceProviderRequest{
		Name:              provider.Name,
		PhysicalNetworkID: physicalNetworkID,
	})
	if err != nil {
		return fail(ctx, zonesPhase, provisioning.ResourceNetworkServiceProvider, provider.Name, err)
	}
	nspID, err := recordRequired(ctx, zonesPhase, provisioning.ResourceNetworkServiceProvider, provider.Name, resp.ID)
	if err != nil {
		return err
	}

	for i := range provider.Devices {
		device := &provider.Devices[i]
		resp, err := ctx.Client.AddNiciraNvpDevice(ctx, nvpDeviceRequest(physicalNetworkID, device))
		if err != nil {
			return fail(ctx, zonesPhase, provisioning.ResourceNiciraNvpDevice, device.Hostname, err)
		}
		recordOptional(ctx, zonesPhase, provisioning.ResourceNiciraNvpDevice, device.Hostname, resp.ID)
	}

	return enableProvider(ctx, provider.Name, nspID)
}

type (
	listElementsFunc     func(context.Context, cloudapi.ListElementsRequest) ([]cloudapi.ProviderElement, error)
	configureElementFunc func(context.Context, cloudapi.ConfigureElementRequest) (*cloudapi.ProviderElement, error)
)

// enableElement turns on the first element backing a provider.
func enableElement(ctx *provisioning.Context, name, nspID string, list listElementsFunc, configure configureElementFunc) error {
	elements, err := list(ctx, cloudapi.ListElementsRequest{NSPID: nspID})
	if err != nil {
		return fmt.Errorf("failed to list elements of provider %s: %w", name, err)
	}
	if len(elements) == 0 {
		return fmt.Errorf("provider %s: %w", name, ErrNoProviderElement)
	}
	if _, err := configure(ctx, cloudapi.ConfigureElementRequest{ID: elements[0].ID, Enabled: true}); err != nil {
		return fmt.Errorf("failed to configure element of provider %s: %w", name, err)
	}
	return nil
}

func enableProvider(ctx *provisioning.Context, name, nspID string) error {
	_, err := ctx.Client.UpdateNetworkServiceProvider(ctx, cloudapi.UpdateNetworkServiceProviderRequest{
		ID:    nspID,
		State: cloudapi.StateEnabled,
	})
	if err != nil {
		return fmt.Errorf("failed to enable provider %s: %w", name, err)
	}
	ctx.Observer.Printf("[Zones] Provider %s enabled", name)
	return nil
}
