package mediseek_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

func TestFailureMessage_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "cancellation wins over everything",
			err:  &mediseek.CancelledError{Identifier: "GET /clinics?"},
			want: mediseek.CancelledMessage,
		},
		{
			name: "status error with server message",
			err:  &mediseek.StatusError{StatusCode: http.StatusNotFound, Message: "clinic not found"},
			want: "clinic not found",
		},
		{
			name: "status error without server message",
			err:  &mediseek.StatusError{StatusCode: http.StatusInternalServerError},
			want: "HTTP 500 error",
		},
		{
			name: "network error normalized to unreachable",
			err:  &mediseek.NetworkError{Err: errors.New("dial tcp: connection refused")},
			want: mediseek.UnreachableMessage,
		},
		{
			name: "wrapped cancellation still detected",
			err:  fmt.Errorf("sending request: %w", &mediseek.CancelledError{}),
			want: mediseek.CancelledMessage,
		},
		{
			name: "unknown error falls back to its own message",
			err:  errors.New("something odd"),
			want: "something odd",
		},
		{
			name: "nil error yields empty message",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mediseek.FailureMessage(tt.err))
		})
	}
}

func TestFailure_BuildsEnvelope(t *testing.T) {
	t.Parallel()

	env := mediseek.Failure[mediseek.Clinic](&mediseek.NetworkError{Err: errors.New("timeout")})

	require.NotNil(t, env)
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Equal(t, mediseek.UnreachableMessage, env.Error)
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	unauthorized := &mediseek.StatusError{StatusCode: http.StatusUnauthorized}
	notFound := &mediseek.StatusError{StatusCode: http.StatusNotFound}

	assert.True(t, mediseek.IsUnauthorized(unauthorized))
	assert.False(t, mediseek.IsUnauthorized(notFound))
	assert.True(t, mediseek.IsNotFound(notFound))
	assert.True(t, mediseek.IsCancelled(&mediseek.CancelledError{}))
	assert.True(t, mediseek.IsNetwork(&mediseek.NetworkError{Err: errors.New("refused")}))
	assert.True(t, mediseek.IsValidation(mediseek.NewValidationError(map[string]string{"email": "must be a valid email"})))
	assert.False(t, mediseek.IsValidation(unauthorized))
}

func TestValidationError_DeterministicOrder(t *testing.T) {
	t.Parallel()

	verr := mediseek.NewValidationError(map[string]string{
		"password": "minimum 6 characters",
		"email":    "must be a valid email",
	})

	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "email", verr.Fields[0].Path)
	assert.Equal(t, "password", verr.Fields[1].Path)
	assert.Equal(t, "validation failed: email: must be a valid email; password: minimum 6 characters", verr.Error())
}

func TestNetworkError_Unwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("dial tcp: i/o timeout")
	nerr := &mediseek.NetworkError{Err: underlying}

	assert.Equal(t, mediseek.UnreachableMessage, nerr.Error())
	assert.ErrorIs(t, nerr, underlying)
}
