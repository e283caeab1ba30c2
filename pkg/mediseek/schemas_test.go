package mediseek_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

func TestLoginRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		request   mediseek.LoginRequest
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid payload",
			request: mediseek.LoginRequest{Email: "user@example.com", Password: "secret123"},
		},
		{
			name:      "missing email",
			request:   mediseek.LoginRequest{Password: "secret123"},
			wantErr:   true,
			wantField: "email",
		},
		{
			name:      "malformed email",
			request:   mediseek.LoginRequest{Email: "not-an-email", Password: "secret123"},
			wantErr:   true,
			wantField: "email",
		},
		{
			name:      "short password",
			request:   mediseek.LoginRequest{Email: "user@example.com", Password: "12345"},
			wantErr:   true,
			wantField: "password",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.request.Validate()
			if !testCase.wantErr {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			verr := &mediseek.ValidationError{}
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.FieldMessage(testCase.wantField))
		})
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := mediseek.SignupRequest{
		Email:           "user@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Nickname:        "pat",
		CountryID:       "KR",
		TermsAgreement:  true,
	}

	t.Run("valid payload", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, valid.Validate())
	})

	t.Run("password mismatch", func(t *testing.T) {
		t.Parallel()

		request := valid
		request.ConfirmPassword = "different1"

		err := request.Validate()
		require.Error(t, err)

		verr := &mediseek.ValidationError{}
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must match password", verr.FieldMessage("confirm_password"))
	})

	t.Run("terms not accepted", func(t *testing.T) {
		t.Parallel()

		request := valid
		request.TermsAgreement = false

		err := request.Validate()
		require.Error(t, err)

		verr := &mediseek.ValidationError{}
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be accepted", verr.FieldMessage("terms_agreement"))
	})

	t.Run("collects every violation", func(t *testing.T) {
		t.Parallel()

		err := mediseek.SignupRequest{}.Validate()
		require.Error(t, err)

		verr := &mediseek.ValidationError{}
		require.ErrorAs(t, err, &verr)
		assert.GreaterOrEqual(t, len(verr.Fields), 4)
	})
}

func TestCreateBookingRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		request   mediseek.CreateBookingRequest
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid payload",
			request: mediseek.CreateBookingRequest{ClinicID: "42", Date: "2025-01-05", Time: "14:30"},
		},
		{
			name:      "slashed date rejected",
			request:   mediseek.CreateBookingRequest{ClinicID: "42", Date: "2025/01/05", Time: "14:30"},
			wantErr:   true,
			wantField: "date",
		},
		{
			name:      "hour out of range",
			request:   mediseek.CreateBookingRequest{ClinicID: "42", Date: "2025-01-05", Time: "25:00"},
			wantErr:   true,
			wantField: "time",
		},
		{
			name:      "missing clinic",
			request:   mediseek.CreateBookingRequest{Date: "2025-01-05", Time: "14:30"},
			wantErr:   true,
			wantField: "clinic_id",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.request.Validate()
			if !testCase.wantErr {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			verr := &mediseek.ValidationError{}
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.FieldMessage(testCase.wantField))
		})
	}
}

func TestCreateBookingRequest_RoundTrip(t *testing.T) {
	t.Parallel()

	original := mediseek.CreateBookingRequest{
		ClinicID: "42",
		Date:     "2025-01-05",
		Time:     "14:30",
		Note:     "first visit",
	}
	require.NoError(t, original.Validate())

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded mediseek.CreateBookingRequest

	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, decoded.Validate())
	assert.Equal(t, original, decoded)
}

func TestClinic_Validate(t *testing.T) {
	t.Parallel()

	clinic := mediseek.Clinic{ID: "1", Name: "Seoul Skin Clinic", Rating: 4.5}
	require.NoError(t, clinic.Validate())

	clinic.Rating = 5.1

	err := clinic.Validate()
	require.Error(t, err)

	verr := &mediseek.ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at most 5", verr.FieldMessage("rating"))
}

func TestBooking_Validate(t *testing.T) {
	t.Parallel()

	booking := mediseek.Booking{
		ID:       "b-1",
		ClinicID: "c-1",
		Date:     "2025-03-10",
		Time:     "09:00",
		Status:   mediseek.BookingStatusConfirmed,
	}
	require.NoError(t, booking.Validate())

	booking.Status = "postponed"
	require.Error(t, booking.Validate())
}

func TestAuthSession_Validate(t *testing.T) {
	t.Parallel()

	session := mediseek.AuthSession{
		User:   mediseek.User{ID: "u-1", Email: "user@example.com"},
		Tokens: map[string]string{mediseek.AccessTokenKey: "tok"},
	}
	require.NoError(t, session.Validate())

	t.Run("missing access token", func(t *testing.T) {
		t.Parallel()

		bad := session
		bad.Tokens = map[string]string{"session_token": "tok"}

		err := bad.Validate()
		require.Error(t, err)

		verr := &mediseek.ValidationError{}
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.FieldMessage("tokens"), mediseek.AccessTokenKey)
	})

	t.Run("nested user violation is pathed", func(t *testing.T) {
		t.Parallel()

		bad := session
		bad.User = mediseek.User{ID: "u-1", Email: "nope"}

		err := bad.Validate()
		require.Error(t, err)

		verr := &mediseek.ValidationError{}
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be a valid email", verr.FieldMessage("user.email"))
	})
}
