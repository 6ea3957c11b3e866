package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

func givenDefaultConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.Load(func(string) (string, bool) { return "", false })
	require.NoError(t, err)

	return cfg
}

func Test_applyFlags(t *testing.T) {
	cfg := givenDefaultConfig(t)

	overridden, err := applyFlags(cfg, ":9090", "", "")
	require.NoError(t, err)
	assert.Equal(t, ":9090", overridden.HTTPAddr)
	assert.Equal(t, config.BackendMemory, overridden.EventStoreBackend)

	_, err = applyFlags(cfg, "", "cassandra", "")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = applyFlags(cfg, "", config.BackendPostgres, "")
	assert.ErrorIs(t, err, config.ErrInvalidConfig, "postgres needs a DSN")
}

func Test_newApp_WithMemoryBackends_ServesTheAPI(t *testing.T) {
	// setup
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	a, err := newApp(ctx, givenDefaultConfig(t), logger)
	require.NoError(t, err)
	defer a.close(ctx)

	e := a.server.Echo()

	// act
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	catalog := httptest.NewRecorder()
	e.ServeHTTP(catalog, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, catalog.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"pageSize":20}`, catalog.Body.String())
}
