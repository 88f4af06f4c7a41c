package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout and polling values.
// These values can be customized via environment variables.
type Timeouts struct {
	HostUpAttempts      int           // Host-state fetches after adding a cluster's hosts
	HostUpInterval      time.Duration // Sleep between host-state fetches
	MaintenanceAttempts int           // State fetches before deleting a host or storage pool
	MaintenanceInterval time.Duration // Sleep between maintenance-state fetches
	APIRequest          time.Duration // Timeout for a single API request
	AsyncJob            time.Duration // Timeout for an asynchronous API job to finish
	RetryMaxAttempts    int           // Maximum number of retries for transient API failures
	RetryInitialDelay   time.Duration // Initial delay between retries
	APIRateLimit        float64       // Requests per second sent to the API (0 disables)
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - DCDEPLOY_HOST_UP_ATTEMPTS (default: 2)
//   - DCDEPLOY_HOST_UP_INTERVAL (default: 30s)
//   - DCDEPLOY_MAINTENANCE_ATTEMPTS (default: 3)
//   - DCDEPLOY_MAINTENANCE_INTERVAL (default: 30s)
//   - DCDEPLOY_API_TIMEOUT (default: 60s)
//   - DCDEPLOY_ASYNC_JOB_TIMEOUT (default: 10m)
//   - DCDEPLOY_RETRY_MAX_ATTEMPTS (default: 3)
//   - DCDEPLOY_RETRY_INITIAL_DELAY (default: 1s)
//   - DCDEPLOY_API_RATE_LIMIT (default: 10)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		HostUpAttempts:      parseInt("DCDEPLOY_HOST_UP_ATTEMPTS", DefaultHostUpAttempts),
		HostUpInterval:      parseDuration("DCDEPLOY_HOST_UP_INTERVAL", DefaultPollInterval),
		MaintenanceAttempts: parseInt("DCDEPLOY_MAINTENANCE_ATTEMPTS", DefaultMaintenanceAttempts),
		MaintenanceInterval: parseDuration("DCDEPLOY_MAINTENANCE_INTERVAL", DefaultPollInterval),
		APIRequest:          parseDuration("DCDEPLOY_API_TIMEOUT", 60*time.Second),
		AsyncJob:            parseDuration("DCDEPLOY_ASYNC_JOB_TIMEOUT", 10*time.Minute),
		RetryMaxAttempts:    parseInt("DCDEPLOY_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay:   parseDuration("DCDEPLOY_RETRY_INITIAL_DELAY", 1*time.Second),
		APIRateLimit:        parseFloat("DCDEPLOY_API_RATE_LIMIT", 10),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}

func parseFloat(envVar string, defaultVal float64) float64 {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f < 0 {
		return defaultVal
	}

	return f
}
