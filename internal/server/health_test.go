package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailscope/mailscope/internal/outlook"
)

// stubStore is a minimal outlook.Store so readiness sees a wired store.
type stubStore struct{}

func (stubStore) ListFolders(ctx context.Context) ([]outlook.StoreFolders, error) {
	return nil, nil
}

func (stubStore) SearchMessages(ctx context.Context, scope outlook.Scope, filter string, opts outlook.SearchOptions) ([]outlook.MessageRow, error) {
	return nil, nil
}

func (stubStore) ExpandCalendar(ctx context.Context, restriction string) ([]outlook.Occurrence, error) {
	return nil, nil
}

func (stubStore) GetItem(ctx context.Context, entryID string) (*outlook.Item, error) {
	return nil, outlook.ErrItemNotFound
}

func newHealthTestContext(t *testing.T, store outlook.Store) *ServerContext {
	t.Helper()
	sc := NewServerContext(context.Background(), store)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func probeEndpoint(t *testing.T, handler http.Handler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, stubStore{}))

	code, body := probeEndpoint(t, h.LivenessHandler())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}

func TestReadinessHandler(t *testing.T) {
	t.Run("ready with store wired", func(t *testing.T) {
		h := NewHealthChecker(newHealthTestContext(t, stubStore{}))

		code, body := probeEndpoint(t, h.ReadinessHandler())
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "ok", body.Checks["ready"])
		assert.Equal(t, "ok", body.Checks["store"])
		assert.Equal(t, "ok", body.Checks["shutdown"])
	})

	t.Run("not ready after SetReady(false)", func(t *testing.T) {
		h := NewHealthChecker(newHealthTestContext(t, stubStore{}))
		h.SetReady(false)

		code, body := probeEndpoint(t, h.ReadinessHandler())
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not ready", body.Status)
		assert.Equal(t, "not ready", body.Checks["ready"])
	})

	t.Run("missing store fails the store check", func(t *testing.T) {
		h := NewHealthChecker(newHealthTestContext(t, nil))

		code, body := probeEndpoint(t, h.ReadinessHandler())
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "no store", body.Checks["store"])
	})

	t.Run("shutdown fails the shutdown check", func(t *testing.T) {
		sc := newHealthTestContext(t, stubStore{})
		h := NewHealthChecker(sc)
		require.NoError(t, sc.Shutdown())

		code, body := probeEndpoint(t, h.ReadinessHandler())
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "shutting down", body.Checks["shutdown"])
	})
}

func TestDetailedHealthHandler(t *testing.T) {
	sc := newHealthTestContext(t, stubStore{})
	h := NewHealthChecker(sc)

	// Seed the ref cache so the reported size is non-zero.
	_, err := sc.Refs().Assign("entry-1")
	require.NoError(t, err)
	_, err = sc.Refs().Assign("entry-2")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body DetailedHealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Uptime)
	assert.Equal(t, 2, body.RefCacheSize)
}

func TestRegisterHealthEndpoints(t *testing.T) {
	h := NewHealthChecker(newHealthTestContext(t, stubStore{}))

	mux := http.NewServeMux()
	h.RegisterHealthEndpoints(mux)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
