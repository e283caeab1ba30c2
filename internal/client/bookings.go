package client

import (
	"context"
	"net/url"

	internalhttp "github.com/mediseek-io/mediseek-client/internal/http"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// BookingsClient implements mediseek.BookingsClient.
type BookingsClient struct {
	httpClient *internalhttp.Client
}

// NewBookingsClient creates a new bookings client.
func NewBookingsClient(httpClient *internalhttp.Client) *BookingsClient {
	return &BookingsClient{httpClient: httpClient}
}

// Create implements mediseek.BookingsClient.Create.
func (c *BookingsClient) Create(ctx context.Context, request *mediseek.CreateBookingRequest) (*mediseek.Envelope[mediseek.Booking], error) {
	if request == nil {
		return nil, mediseek.ErrRequestRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope[mediseek.Booking](c.httpClient.Post(ctx, pathBookings, request))
	if err != nil {
		return nil, err
	}

	err = validateData(envelope, mediseek.Booking.Validate)
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// List implements mediseek.BookingsClient.List.
func (c *BookingsClient) List(ctx context.Context, params *mediseek.QueryParams) (*mediseek.Envelope[mediseek.BookingList], error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	envelope, err := decodeEnvelope[mediseek.BookingList](c.httpClient.Get(ctx, pathBookings, query))
	if err != nil {
		return nil, err
	}

	err = validateData(envelope, func(list mediseek.BookingList) error {
		return validateEach(list.Items, mediseek.Booking.Validate)
	})
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// Get implements mediseek.BookingsClient.Get.
func (c *BookingsClient) Get(ctx context.Context, bookingID string) (*mediseek.Envelope[mediseek.Booking], error) {
	path, err := resolvePath(pathBookingDetail, bookingID)
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope[mediseek.Booking](c.httpClient.Get(ctx, path, nil))
	if err != nil {
		return nil, err
	}

	err = validateData(envelope, mediseek.Booking.Validate)
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// Cancel implements mediseek.BookingsClient.Cancel.
func (c *BookingsClient) Cancel(ctx context.Context, bookingID string) (*mediseek.Envelope[mediseek.Booking], error) {
	path, err := resolvePath(pathBookingCancel, bookingID)
	if err != nil {
		return nil, err
	}

	return decodeEnvelope[mediseek.Booking](c.httpClient.Delete(ctx, path))
}
