package client

import (
	"context"

	internalhttp "github.com/mediseek-io/mediseek-client/internal/http"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// ProfileClient implements mediseek.ProfileClient.
type ProfileClient struct {
	httpClient *internalhttp.Client
}

// NewProfileClient creates a new profile client.
func NewProfileClient(httpClient *internalhttp.Client) *ProfileClient {
	return &ProfileClient{httpClient: httpClient}
}

// Get implements mediseek.ProfileClient.Get.
func (c *ProfileClient) Get(ctx context.Context) (*mediseek.Envelope[mediseek.Profile], error) {
	return decodeEnvelope[mediseek.Profile](c.httpClient.Get(ctx, pathProfile, nil))
}

// Update implements mediseek.ProfileClient.Update.
func (c *ProfileClient) Update(ctx context.Context, request *mediseek.UpdateProfileRequest) (*mediseek.Envelope[mediseek.Profile], error) {
	if request == nil {
		return nil, mediseek.ErrRequestRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	return decodeEnvelope[mediseek.Profile](c.httpClient.Put(ctx, pathProfile, request))
}

// Create implements mediseek.ProfileClient.Create. Requires a prior auth
// token; without one the server answers 401 and the envelope reports it.
func (c *ProfileClient) Create(ctx context.Context, request *mediseek.CreateProfileRequest) (*mediseek.Envelope[mediseek.Profile], error) {
	if request == nil {
		return nil, mediseek.ErrRequestRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	return decodeEnvelope[mediseek.Profile](c.httpClient.Post(ctx, pathProfileCreate, request))
}
