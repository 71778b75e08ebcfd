// internal/common/database/elasticsearch_test.go
package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edagent-workers/internal/common/config"
)

// ==========================
// Test Helpers
// ==========================

func newFakeES(t *testing.T, handler http.HandlerFunc) *ElasticsearchClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewElasticsearch(config.ElasticsearchConfig{
		Addresses:    []string{srv.URL},
		VacancyIndex: "vacancies",
	})
	require.NoError(t, err)
	return client
}

func okESHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{}`))
}

// ==========================
// Ping Tests
// ==========================

func TestElasticsearchClient_Ping(t *testing.T) {
	client := newFakeES(t, okESHandler)

	err := client.Ping(context.Background())

	assert.NoError(t, err)
}

func TestElasticsearchClient_Ping_ServerError(t *testing.T) {
	client := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	err := client.Ping(context.Background())

	assert.Error(t, err)
}

func TestElasticsearchClient_Ping_CancelledContext(t *testing.T) {
	client := newFakeES(t, okESHandler)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Ping(ctx)

	assert.Error(t, err)
}
