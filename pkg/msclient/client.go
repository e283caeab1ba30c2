// Package msclient provides the main entry point for creating MediSeek API clients
package msclient

import (
	"strings"

	"github.com/mediseek-io/mediseek-client/internal/client"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// New creates a new MediSeek API client from config, normalizing the
// endpoint (trailing slash trimmed, "https://" assumed when no scheme is
// given).
func New(config *mediseek.Config) (mediseek.Client, error) {
	if config == nil {
		return nil, mediseek.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, mediseek.ErrAPIEndpointRequired
	}

	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	return client.New(config)
}

// NewWithEndpoint creates an unauthenticated client for the endpoint.
func NewWithEndpoint(endpoint string) (mediseek.Client, error) {
	return New(&mediseek.Config{APIEndpoint: endpoint})
}

// NewWithToken creates a client preloaded with a bearer token.
func NewWithToken(endpoint, accessToken string) (mediseek.Client, error) {
	return New(&mediseek.Config{
		APIEndpoint: endpoint,
		AccessToken: accessToken,
	})
}
