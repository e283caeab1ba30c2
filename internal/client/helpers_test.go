package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// newTestClient spins up a server around handler and returns a client
// pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&mediseek.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	return client
}

// jsonResponse writes a JSON body with the given status.
func jsonResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
