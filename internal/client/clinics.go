package client

import (
	"context"
	"net/url"

	internalhttp "github.com/mediseek-io/mediseek-client/internal/http"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// ClinicsClient implements mediseek.ClinicsClient.
type ClinicsClient struct {
	httpClient *internalhttp.Client
}

// NewClinicsClient creates a new clinics client.
func NewClinicsClient(httpClient *internalhttp.Client) *ClinicsClient {
	return &ClinicsClient{httpClient: httpClient}
}

// List implements mediseek.ClinicsClient.List.
func (c *ClinicsClient) List(ctx context.Context, params *mediseek.QueryParams) (*mediseek.Envelope[mediseek.ClinicList], error) {
	return c.list(ctx, pathClinics, params)
}

// Search implements mediseek.ClinicsClient.Search.
func (c *ClinicsClient) Search(ctx context.Context, params *mediseek.QueryParams) (*mediseek.Envelope[mediseek.ClinicList], error) {
	return c.list(ctx, pathClinicSearch, params)
}

func (c *ClinicsClient) list(ctx context.Context, path string, params *mediseek.QueryParams) (*mediseek.Envelope[mediseek.ClinicList], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	envelope, err := decodeEnvelope[mediseek.ClinicList](c.httpClient.Get(ctx, path, query))
	if err != nil {
		return nil, err
	}

	err = validateData(envelope, func(list mediseek.ClinicList) error {
		return validateEach(list.Items, mediseek.Clinic.Validate)
	})
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// Get implements mediseek.ClinicsClient.Get.
func (c *ClinicsClient) Get(ctx context.Context, clinicID string) (*mediseek.Envelope[mediseek.Clinic], error) {
	path, err := resolvePath(pathClinicDetail, clinicID)
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope[mediseek.Clinic](c.httpClient.Get(ctx, path, nil))
	if err != nil {
		return nil, err
	}

	err = validateData(envelope, mediseek.Clinic.Validate)
	if err != nil {
		return nil, err
	}

	return envelope, nil
}
