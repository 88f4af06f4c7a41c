package config

import "time"

// Convergence polling defaults.
const (
	// DefaultHostUpAttempts is the number of host-state fetches after adding hosts.
	DefaultHostUpAttempts = 2
	// DefaultMaintenanceAttempts is the number of state fetches before deleting a host or pool.
	DefaultMaintenanceAttempts = 3
	// DefaultPollInterval is the fixed sleep between convergence fetches.
	DefaultPollInterval = 30 * time.Second
)

// Environment variables for API access.
const (
	EnvAPIURL    = "DCDEPLOY_API_URL"
	EnvAPIKey    = "DCDEPLOY_API_KEY"
	EnvSecretKey = "DCDEPLOY_SECRET_KEY"
)
