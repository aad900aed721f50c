package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/securetask/internal/domain/entity"
)

func newTestIndex(t *testing.T, h http.HandlerFunc) *UserIndex {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewUserIndex(es, "users")
}

// the v8 client refuses to talk to servers that do not identify as Elasticsearch
func esHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
}

func TestSearchQuery(t *testing.T) {
	b, err := json.Marshal(searchQuery("ann", 5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"multi_match":{"query":"ann","fields":["email^2","name"]}},"size":5}`, string(b))
}

func TestDecodeHits(t *testing.T) {
	body := `{"hits":{"hits":[
		{"_id":"1","_source":{"id":"1","name":"Ann","email":"ann@x.com","role":"user"}},
		{"_id":"2","_source":{"name":"Bob","email":"bob@x.com","role":"admin"}}
	]}}`
	hits, err := decodeHits([]byte(body))
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, entity.UserSummary{ID: "1", Name: "Ann", Email: "ann@x.com", Role: entity.RoleUser}, hits[0])
	assert.Equal(t, "2", hits[1].ID)
}

func TestIndexUser_SendsSummaryOnly(t *testing.T) {
	var gotPath, gotBody string
	ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotPath, gotBody = r.URL.Path, string(b)
		esHeaders(w)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := ix.IndexUser(context.Background(), entity.UserSummary{ID: "u1", Name: "Ann", Email: "ann@x.com", Role: entity.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "/users/_doc/u1", gotPath)
	assert.NotContains(t, strings.ToLower(gotBody), "password")
	assert.Contains(t, gotBody, `"email":"ann@x.com"`)
}

func TestSearchUsers(t *testing.T) {
	ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		esHeaders(w)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"1","_source":{"id":"1","name":"Ann","email":"ann@x.com","role":"user"}}]}}`))
	})

	hits, err := ix.SearchUsers(context.Background(), "ann", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Ann", hits[0].Name)
}

func TestSearchUsers_ErrorStatus(t *testing.T) {
	ix := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		esHeaders(w)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := ix.SearchUsers(context.Background(), "ann", 10)
	assert.Error(t, err)
}
