package config

import (
	"fmt"
	"os"
	"strings"
)

// Endpoint is the resolved control-plane API location and credentials.
type Endpoint struct {
	URL       string
	APIKey    string
	SecretKey string
	VerifySSL bool
}

// ResolveEndpoint builds the API endpoint from the first management server,
// letting DCDEPLOY_API_URL, DCDEPLOY_API_KEY and DCDEPLOY_SECRET_KEY override
// the topology values.
func (c *Config) ResolveEndpoint() (*Endpoint, error) {
	ep := &Endpoint{VerifySSL: true}

	if len(c.ManagementServers) > 0 && c.ManagementServers[0].Host != "" {
		ms := c.ManagementServers[0]
		scheme := "http"
		if ms.UseHTTPS {
			scheme = "https"
		}
		path := ms.Path
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		ep.URL = fmt.Sprintf("%s://%s:%d%s", scheme, ms.Host, ms.Port, path)
		ep.APIKey = ms.APIKey
		ep.SecretKey = ms.SecretKey
		if ms.VerifySSL != nil {
			ep.VerifySSL = *ms.VerifySSL
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		ep.URL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		ep.APIKey = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		ep.SecretKey = v
	}

	if ep.URL == "" {
		return nil, fmt.Errorf("no management server configured (set managementServers or %s)", EnvAPIURL)
	}
	if ep.APIKey == "" || ep.SecretKey == "" {
		return nil, fmt.Errorf("api key and secret key are required (set them in managementServers or %s/%s)", EnvAPIKey, EnvSecretKey)
	}

	return ep, nil
}
