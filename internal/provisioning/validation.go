package provisioning

import (
	"fmt"
	"net"
	"strings"

	"github.com/imamik/dcdeploy/internal/config"
)

// ValidationError represents a topology validation error or warning.
type ValidationError struct {
	Field    string // Topology field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase runs pre-flight checks that span several topology nodes.
// It issues no API calls, so a failure here never leaves anything to roll back.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	ctx.Observer.Printf("[Validation] Running pre-flight validation...")

	var errs []ValidationError
	for _, ve := range Preflight(ctx.Config) {
		if ve.IsError() {
			errs = append(errs, ve)
			continue
		}
		ctx.Observer.Printf("[Validation] WARNING: %s: %s", ve.Field, ve.Message)
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("topology validation failed:\n  %s", strings.Join(msgs, "\n  "))
	}

	ctx.Observer.Printf("[Validation] Validation passed")
	return nil
}

// Preflight returns cross-node errors and warnings for a topology.
func Preflight(cfg *config.Config) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for i := range cfg.Zones {
		zone := &cfg.Zones[i]
		field := fmt.Sprintf("zones[%d]", i)

		if seen[zone.Name] {
			errs = append(errs, ValidationError{
				Field:    field + ".name",
				Message:  fmt.Sprintf("zone name %q is used more than once", zone.Name),
				Severity: "error",
			})
		}
		seen[zone.Name] = true

		errs = append(errs, validateZone(zone, field)...)
	}

	return errs
}

func validateZone(zone *config.Zone, field string) []ValidationError {
	var errs []ValidationError

	// --- Networking ---

	if zone.NetworkType == config.NetworkTypeAdvanced && zone.SecurityGroupEnabled && len(zone.IPRanges) == 0 {
		errs = append(errs, ValidationError{
			Field:    field + ".ipranges",
			Message:  "an advanced zone with security groups needs an IP range for its shared network",
			Severity: "error",
		})
	}

	if zone.IsEIPELB() && len(zone.IPRanges) == 0 {
		errs = append(errs, ValidationError{
			Field:    field + ".ipranges",
			Message:  "basic zone carries Public traffic but declares no public IP ranges",
			Severity: "warning",
		})
	}

	for j, pn := range zone.PhysicalNetworks {
		for k, provider := range pn.Providers {
			if len(provider.Devices) > 0 && provider.Name != config.ProviderNiciraNvp {
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("%s.physical_networks[%d].providers[%d]", field, j, k),
					Message:  fmt.Sprintf("devices are not supported for provider %q", provider.Name),
					Severity: "error",
				})
			}
		}
	}

	// --- Pods and clusters ---

	for j, pod := range zone.Pods {
		podField := fmt.Sprintf("%s.pods[%d]", field, j)

		if msg := rangeOutsideSubnet(pod.Gateway, pod.Netmask, pod.StartIP, pod.EndIP); msg != "" {
			errs = append(errs, ValidationError{Field: podField, Message: msg, Severity: "warning"})
		}

		for k, cluster := range pod.Clusters {
			clusterField := fmt.Sprintf("%s.clusters[%d]", podField, k)

			if len(cluster.Hosts) == 0 {
				errs = append(errs, ValidationError{
					Field:    clusterField + ".hosts",
					Message:  fmt.Sprintf("cluster %q has no hosts", cluster.Name),
					Severity: "warning",
				})
			} else if len(cluster.PrimaryStorages) == 0 {
				errs = append(errs, ValidationError{
					Field:    clusterField + ".primaryStorages",
					Message:  fmt.Sprintf("cluster %q has hosts but no primary storage", cluster.Name),
					Severity: "warning",
				})
			}

			for h, host := range cluster.Hosts {
				if host.URL == "" {
					errs = append(errs, ValidationError{
						Field:    fmt.Sprintf("%s.hosts[%d].url", clusterField, h),
						Message:  "host url is required",
						Severity: "error",
					})
				}
			}
		}
	}

	// --- Storage ---

	if len(zone.SecondaryStorages) == 0 {
		errs = append(errs, ValidationError{
			Field:    field + ".secondaryStorages",
			Message:  "no secondary storage declared; templates cannot be registered",
			Severity: "warning",
		})
	}

	if len(zone.CacheStorages) > 0 && !hasObjectStore(zone.SecondaryStorages) {
		errs = append(errs, ValidationError{
			Field:    field + ".cacheStorages",
			Message:  "cache storage is only used by object-store secondary storage (s3, swift)",
			Severity: "warning",
		})
	}

	return errs
}

func hasObjectStore(stores []config.SecondaryStorage) bool {
	for _, s := range stores {
		switch strings.ToLower(s.Provider) {
		case "s3", "swift":
			return true
		}
	}
	return false
}

// rangeOutsideSubnet describes a pod range that falls outside its gateway subnet, or returns "".
func rangeOutsideSubnet(gateway, netmask, startIP, endIP string) string {
	gw := net.ParseIP(gateway).To4()
	mask := net.ParseIP(netmask).To4()
	if gw == nil || mask == nil {
		return ""
	}
	subnet := &net.IPNet{IP: gw.Mask(net.IPMask(mask)), Mask: net.IPMask(mask)}

	for _, addr := range []string{startIP, endIP} {
		if addr == "" {
			continue
		}
		ip := net.ParseIP(addr)
		if ip != nil && !subnet.Contains(ip) {
			return fmt.Sprintf("address %s is outside %s", addr, subnet)
		}
	}
	return ""
}
