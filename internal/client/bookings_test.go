package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

func TestBookingsClient_Create(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var sent map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &sent))
		assert.Equal(t, "c1", sent["clinic_id"])
		assert.Equal(t, "2026-09-15", sent["date"])
		assert.Equal(t, "14:30", sent["time"])

		jsonResponse(w, http.StatusCreated, `{
			"success": true,
			"data": {
				"id": "b1", "clinic_id": "c1", "clinic_name": "City Clinic",
				"date": "2026-09-15", "time": "14:30", "status": "pending"
			}
		}`)
	})

	envelope, err := client.Bookings().Create(context.Background(), &mediseek.CreateBookingRequest{
		ClinicID: "c1",
		Date:     "2026-09-15",
		Time:     "14:30",
	})
	require.NoError(t, err)
	require.True(t, envelope.Success)
	assert.Equal(t, mediseek.BookingStatusPending, envelope.Data.Status)
}

func TestBookingsClient_CreateInvalidSkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := client.Bookings().Create(context.Background(), &mediseek.CreateBookingRequest{
		ClinicID: "c1",
		Date:     "15/09/2026",
		Time:     "2pm",
	})
	require.Error(t, err)
	assert.True(t, mediseek.IsValidation(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestBookingsClient_ListFiltersByStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "confirmed", r.URL.Query().Get("status"))

		jsonResponse(w, http.StatusOK, `{
			"success": true,
			"data": {
				"pagination": {"total": 1, "page": 1, "per_page": 10},
				"items": [{
					"id": "b1", "clinic_id": "c1",
					"date": "2026-09-15", "time": "14:30", "status": "confirmed"
				}]
			}
		}`)
	})

	params := mediseek.NewQueryParams()
	params.Status = mediseek.BookingStatusConfirmed

	envelope, err := client.Bookings().List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, mediseek.BookingStatusConfirmed, envelope.Data.Items[0].Status)
}

func TestBookingsClient_Cancel(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/bookings/b1/cancel", r.URL.Path)

		jsonResponse(w, http.StatusOK, `{
			"success": true,
			"data": {
				"id": "b1", "clinic_id": "c1",
				"date": "2026-09-15", "time": "14:30", "status": "cancelled"
			}
		}`)
	})

	envelope, err := client.Bookings().Cancel(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, mediseek.BookingStatusCancelled, envelope.Data.Status)
}

func TestBookingsClient_UnknownStatusRejected(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `{
			"success": true,
			"data": {
				"id": "b1", "clinic_id": "c1",
				"date": "2026-09-15", "time": "14:30", "status": "teleported"
			}
		}`)
	})

	_, err := client.Bookings().Get(context.Background(), "b1")
	require.Error(t, err)
	assert.True(t, mediseek.IsValidation(err))
}

func TestChatClient_Send(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)

		jsonResponse(w, http.StatusOK, `{
			"success": true,
			"data": {"id": "m1", "role": "assistant", "content": "Drink plenty of water."}
		}`)
	})

	envelope, err := client.Chat().Send(context.Background(), &mediseek.ChatRequest{
		Question: "What helps with a sore throat?",
	})
	require.NoError(t, err)
	assert.Equal(t, mediseek.ChatRoleAssistant, envelope.Data.Role)
}

func TestChatClient_SendEmptyQuestion(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	_, err := client.Chat().Send(context.Background(), &mediseek.ChatRequest{})
	require.Error(t, err)
	assert.True(t, mediseek.IsValidation(err))
}

func TestChatClient_History(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/history", r.URL.Path)

		jsonResponse(w, http.StatusOK, `{
			"success": true,
			"data": {
				"pagination": {"total": 2, "page": 1, "per_page": 20},
				"items": [
					{"id": "m1", "role": "user", "content": "hello"},
					{"id": "m2", "role": "assistant", "content": "hi there"}
				]
			}
		}`)
	})

	envelope, err := client.Chat().History(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, envelope.Data.Items, 2)
	assert.Equal(t, mediseek.ChatRoleUser, envelope.Data.Items[0].Role)
}

func TestProfileClient_Update(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/user/profile", r.URL.Path)

		jsonResponse(w, http.StatusOK, `{
			"success": true,
			"data": {"user_id": "u1", "nickname": "amina-updated"}
		}`)
	})

	envelope, err := client.Profile().Update(context.Background(), &mediseek.UpdateProfileRequest{
		Nickname: "amina-updated",
	})
	require.NoError(t, err)
	assert.Equal(t, "amina-updated", envelope.Data.Nickname)
}

func TestProfileClient_CreateValidatesGender(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	_, err := client.Profile().Create(context.Background(), &mediseek.CreateProfileRequest{
		Nickname:  "amina",
		CountryID: "PK",
		Gender:    "robot",
	})
	require.Error(t, err)
	assert.True(t, mediseek.IsValidation(err))
}

func TestDecodeEnvelope_EmptyBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	envelope, err := client.Profile().Get(context.Background())
	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Data)
}

func TestDecodeEnvelope_MalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `not json at all`)
	})

	_, err := client.Profile().Get(context.Background())
	require.Error(t, err)
	assert.True(t, mediseek.IsValidation(err))
}
