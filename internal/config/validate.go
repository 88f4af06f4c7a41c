package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidNetworkTypes contains the supported zone network types.
var ValidNetworkTypes = map[string]bool{
	NetworkTypeBasic:    true,
	NetworkTypeAdvanced: true,
}

// Validate checks the topology for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if len(c.Zones) == 0 {
		return fmt.Errorf("at least one zone is required")
	}

	for i := range c.Zones {
		if err := c.Zones[i].validate(); err != nil {
			return fmt.Errorf("zone %d (%s): %w", i, c.Zones[i].Name, err)
		}
	}

	for i, kv := range c.GlobalConfig {
		if kv.Name == "" {
			return fmt.Errorf("globalConfig %d: name is required", i)
		}
	}

	if c.S3 != nil && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3 is set")
	}

	return nil
}

func (z *Zone) validate() error {
	if z.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidNetworkTypes[z.NetworkType] {
		return fmt.Errorf("invalid networktype %q: must be %s or %s", z.NetworkType, NetworkTypeBasic, NetworkTypeAdvanced)
	}

	// Guest CIDR is only sent, and only required, for zones without security groups.
	if z.NetworkType == NetworkTypeAdvanced && !z.SecurityGroupEnabled {
		if z.GuestCIDRAddress == "" {
			return fmt.Errorf("guestcidraddress is required when security groups are disabled")
		}
		if _, _, err := net.ParseCIDR(z.GuestCIDRAddress); err != nil {
			return fmt.Errorf("invalid guestcidraddress: %w", err)
		}
	}

	if z.NetworkType == NetworkTypeBasic && len(z.PhysicalNetworks) == 0 {
		return fmt.Errorf("a basic zone needs at least one physical network")
	}

	for i, pn := range z.PhysicalNetworks {
		if pn.Name == "" {
			return fmt.Errorf("physical network %d: name is required", i)
		}
	}

	for _, pod := range z.Pods {
		if err := pod.validate(); err != nil {
			return fmt.Errorf("pod %s: %w", pod.Name, err)
		}
	}

	for i, r := range z.IPRanges {
		if err := r.validate(); err != nil {
			return fmt.Errorf("iprange %d: %w", i, err)
		}
	}

	for i, s := range z.SecondaryStorages {
		if s.Provider == "" {
			return fmt.Errorf("secondary storage %d: provider is required", i)
		}
	}
	for i, s := range z.CacheStorages {
		if s.URL == "" {
			return fmt.Errorf("cache storage %d: url is required", i)
		}
	}

	return nil
}

func (p *Pod) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if net.ParseIP(p.StartIP) == nil {
		return fmt.Errorf("invalid startip %q", p.StartIP)
	}
	if p.EndIP != "" && net.ParseIP(p.EndIP) == nil {
		return fmt.Errorf("invalid endip %q", p.EndIP)
	}
	for _, cl := range p.Clusters {
		if cl.Name == "" {
			return fmt.Errorf("cluster name is required")
		}
		if cl.Hypervisor == "" {
			return fmt.Errorf("cluster %s: hypervisor is required", cl.Name)
		}
		for i, ps := range cl.PrimaryStorages {
			if ps.Name == "" || ps.URL == "" {
				return fmt.Errorf("cluster %s: primary storage %d needs name and url", cl.Name, i)
			}
		}
	}
	return nil
}

func (r *IPRange) validate() error {
	if net.ParseIP(r.StartIP) == nil {
		return fmt.Errorf("invalid startip %q", r.StartIP)
	}
	if r.EndIP != "" && net.ParseIP(r.EndIP) == nil {
		return fmt.Errorf("invalid endip %q", r.EndIP)
	}
	if r.Gateway != "" && net.ParseIP(r.Gateway) == nil {
		return fmt.Errorf("invalid gateway %q", r.Gateway)
	}
	return nil
}

// ApplyDefaults fills in values the topology leaves implicit.
func (c *Config) ApplyDefaults() {
	for i := range c.ManagementServers {
		ms := &c.ManagementServers[i]
		if ms.Port == 0 {
			ms.Port = 8080
		}
		if ms.Path == "" {
			ms.Path = "/client/api"
		}
	}

	for zi := range c.Zones {
		z := &c.Zones[zi]
		z.NetworkType = normalizeNetworkType(z.NetworkType)
		for pi := range z.Pods {
			for ci := range z.Pods[pi].Clusters {
				cl := &z.Pods[pi].Clusters[ci]
				if cl.ClusterType == "" {
					cl.ClusterType = "CloudManaged"
				}
			}
		}
	}
}

func normalizeNetworkType(s string) string {
	switch strings.ToLower(s) {
	case "basic":
		return NetworkTypeBasic
	case "advanced":
		return NetworkTypeAdvanced
	default:
		return s
	}
}
