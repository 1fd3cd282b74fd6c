package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func createClient(t *testing.T, ts *testServer, cookie string, body map[string]any) map[string]any {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/clients", cookie, body)
	require.Equal(t, http.StatusCreated, w.Code, "create client failed: %s", w.Body.String())

	var payload struct {
		Client map[string]any `json:"client"`
	}
	decode(t, w, &payload)
	return payload.Client
}

func TestCreateClientValidation(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"type": "person", "startDate": "2025-01-01"}},
		{"whitespace name", map[string]any{"name": " ", "type": "person", "startDate": "2025-01-01"}},
		{"bad type", map[string]any{"name": "Acme", "type": "llc", "startDate": "2025-01-01"}},
		{"missing start", map[string]any{"name": "Acme", "type": "company"}},
		{"bad start", map[string]any{"name": "Acme", "type": "company", "startDate": "soon"}},
		{"end equals start", map[string]any{"name": "Acme", "type": "company", "startDate": "2025-01-01", "endDate": "2025-01-01"}},
		{"end before start", map[string]any{"name": "Acme", "type": "company", "startDate": "2025-01-01", "endDate": "2024-12-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/clients", cookie, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestClientDateOrderingOnPatch(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	client := createClient(t, ts, cookie, map[string]any{
		"name": "Acme", "type": "company", "value": 250000,
		"startDate": "2025-01-01", "endDate": "2025-06-30",
	})
	id := client["id"].(string)

	// Moving startDate past endDate breaks the pair even though the new
	// start is itself valid.
	w := ts.do(t, http.MethodPatch, "/api/clients/"+id, cookie, map[string]any{"startDate": "2025-07-01"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Clearing endDate lifts the constraint.
	w = ts.do(t, http.MethodPatch, "/api/clients/"+id, cookie, map[string]any{"endDate": nil})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodPatch, "/api/clients/"+id, cookie, map[string]any{"startDate": "2025-07-01"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestClientTypeFilter(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice@example.com")

	createClient(t, ts, cookie, map[string]any{"name": "Jane", "type": "person", "startDate": "2025-01-01"})
	createClient(t, ts, cookie, map[string]any{"name": "Acme", "type": "company", "startDate": "2025-01-01"})

	w := ts.do(t, http.MethodGet, "/api/clients?type=company", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Clients []struct {
			Name string `json:"name"`
		} `json:"clients"`
	}
	decode(t, w, &payload)
	require.Len(t, payload.Clients, 1)
	require.Equal(t, "Acme", payload.Clients[0].Name)

	w = ts.do(t, http.MethodGet, "/api/clients?type=nonprofit", cookie, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientOwnershipHiddenAs404(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice@example.com")
	bob := ts.register(t, "bob@example.com")

	client := createClient(t, ts, alice, map[string]any{"name": "Acme", "type": "company", "startDate": "2025-01-01"})
	id := client["id"].(string)

	w := ts.do(t, http.MethodDelete, "/api/clients/"+id, bob, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
