package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkovalev/go-sync-keeper/internal/config"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/models"
)

func newTestAdapter(t *testing.T, handler http.Handler) (ServerAdapter, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    srv.URL,
		RequestTimeout: 2 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return a, srv
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.ErrorIs(t, err, config.ErrInvalidAdapterConfigs)
}

// ── FetchBundle ─────────────────────────────────────────────────────────────

func TestHTTPServerAdapter_FetchBundle(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sync/bundle", r.URL.Path)

		resp := models.FullSyncResponse{Buckets: map[string]models.Bucket{
			"menu": {Name: "menu", Payload: json.RawMessage(`{"items":[]}`), ContentHash: "abc"},
		}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))

	got, err := a.FetchBundle(context.Background())
	require.NoError(t, err)

	require.Contains(t, got.Buckets, "menu")
	assert.Equal(t, "abc", got.Buckets["menu"].ContentHash)
}

func TestHTTPServerAdapter_FetchBundle_ServerError(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := a.FetchBundle(context.Background())
	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── DeltaSync ───────────────────────────────────────────────────────────────

func TestHTTPServerAdapter_DeltaSync_SendsHashesWithLength(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/delta", r.URL.Path)

		var req models.DeltaSyncRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.Length)
		assert.Equal(t, map[string]string{"menu": "h1", "screens": "h2"}, req.Hashes)

		resp := models.DeltaSyncResponse{
			Changed: map[string]models.Bucket{
				"menu": {Name: "menu", Payload: json.RawMessage(`{"items":["latte"]}`), ContentHash: "h3"},
			},
			Unchanged: []string{"screens"},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))

	got, err := a.DeltaSync(context.Background(), models.DeltaSyncRequest{
		Hashes: map[string]string{"menu": "h1", "screens": "h2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"screens"}, got.Unchanged)
	require.Contains(t, got.Changed, "menu")
	assert.Equal(t, "h3", got.Changed["menu"].ContentHash)
}

// ── SendMutation ────────────────────────────────────────────────────────────

func TestHTTPServerAdapter_SendMutation_MethodMapping(t *testing.T) {
	tests := []struct {
		method   models.MutationMethod
		wantHTTP string
	}{
		{method: models.MethodCreate, wantHTTP: http.MethodPost},
		{method: models.MethodUpdate, wantHTTP: http.MethodPut},
		{method: models.MethodDelete, wantHTTP: http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			var gotMethod, gotPath string
			a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				w.WriteHeader(http.StatusOK)
			}))

			err := a.SendMutation(context.Background(), models.PendingMutation{
				Method:   tt.method,
				Endpoint: "/api/items/5",
				Body:     json.RawMessage(`{"v":1}`),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, gotMethod)
			assert.Equal(t, "/api/items/5", gotPath)
		})
	}
}

func TestHTTPServerAdapter_SendMutation_SetsIfMatchHeader(t *testing.T) {
	var gotIfMatch string
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIfMatch = r.Header.Get("If-Match")
		w.WriteHeader(http.StatusOK)
	}))

	err := a.SendMutation(context.Background(), models.PendingMutation{
		Method:        models.MethodUpdate,
		Endpoint:      "/api/items/5",
		Body:          json.RawMessage(`{"v":1}`),
		EntityVersion: "v42",
	})
	require.NoError(t, err)
	assert.Equal(t, "v42", gotIfMatch)
}

func TestHTTPServerAdapter_SendMutation_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "other 4xx", status: http.StatusTeapot, wantErr: ErrClientError},
		{name: "internal error", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			err := a.SendMutation(context.Background(), models.PendingMutation{
				Method:   models.MethodUpdate,
				Endpoint: "/api/items/5",
				Body:     json.RawMessage(`{}`),
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPServerAdapter_SendMutation_UnknownMethod(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	err := a.SendMutation(context.Background(), models.PendingMutation{
		Method:   "patch",
		Endpoint: "/api/items/5",
	})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestHTTPServerAdapter_SendMutation_ServerDown(t *testing.T) {
	a, srv := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close()

	err := a.SendMutation(context.Background(), models.PendingMutation{
		Method:   models.MethodUpdate,
		Endpoint: "/api/items/5",
		Body:     json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestHTTPServerAdapter_SendMutation_Cancelled(t *testing.T) {
	started := make(chan struct{})
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	err := a.SendMutation(ctx, models.PendingMutation{
		Method:   models.MethodUpdate,
		Endpoint: "/api/items/5",
		Body:     json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, ErrCancelled)
}
