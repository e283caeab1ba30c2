package client

import (
	"encoding/json"

	internalhttp "github.com/mediseek-io/mediseek-client/internal/http"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// decodeEnvelope turns a transport result into a typed envelope. Ordinary
// transport failures (cancellation, HTTP status, network loss) become
// {success:false} envelope values; a body that cannot be decoded is a
// contract violation and comes back as a ValidationError.
func decodeEnvelope[T any](resp *internalhttp.Response, err error) (*mediseek.Envelope[T], error) {
	if err != nil {
		return mediseek.Failure[T](err), nil
	}

	if len(resp.Body) == 0 {
		// Degenerate empty response: success is implied by the 2xx status.
		return &mediseek.Envelope[T]{Success: true}, nil
	}

	var envelope mediseek.Envelope[T]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, mediseek.NewValidationError(map[string]string{
			"": "response is not a valid envelope: " + err.Error(),
		})
	}

	return &envelope, nil
}

// validateData runs the inbound contract check on a successful envelope's
// payload. Failed envelopes carry no data worth checking.
func validateData[T any](envelope *mediseek.Envelope[T], check func(T) error) error {
	if envelope == nil || !envelope.Success || envelope.Data == nil {
		return nil
	}

	return check(*envelope.Data)
}

// validateEach applies a record check across a list payload.
func validateEach[T any](items []T, check func(T) error) error {
	for _, item := range items {
		err := check(item)
		if err != nil {
			return err
		}
	}

	return nil
}
