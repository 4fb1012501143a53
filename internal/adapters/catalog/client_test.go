package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferenceplanner/internal/domain"
)

const sessionsFixture = `[
	{"id": "s1", "title": "Intro to Go", "start_time": "2026-06-15T09:00:00Z", "end_time": "2026-06-15T10:00:00Z"},
	{"id": "s2", "title": "Advanced Go", "start_time": "2026-06-15T09:00:00Z", "end_time": "2026-06-15T10:00:00Z"},
	{"id": "s3", "title": "Go at Scale", "start_time": "2026-06-16T10:00:00Z", "end_time": "2026-06-16T11:00:00Z"}
]`

func newTestCatalog(t *testing.T, handler http.Handler) domain.SessionCatalog {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPCatalog(srv.URL, srv.Client())
}

func TestHTTPCatalog_ListSessions(t *testing.T) {
	cat := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/sessions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sessionsFixture))
	}))

	sessions, err := cat.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	// Catalog order is the canonical order and must survive decoding.
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, "s2", sessions[1].ID)
	assert.Equal(t, "s3", sessions[2].ID)
	assert.Equal(t, "Intro to Go", sessions[0].Title)
}

func TestHTTPCatalog_ListSessions_Empty(t *testing.T) {
	cat := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	sessions, err := cat.ListSessions(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestHTTPCatalog_GetSession_NotFound(t *testing.T) {
	cat := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := cat.GetSession(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHTTPCatalog_GetSpeaker(t *testing.T) {
	cat := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/speakers/sp1", r.URL.Path)
		w.Write([]byte(`{"id": "sp1", "name": "Ada Lovelace", "bio": "First programmer."}`))
	}))

	speaker, err := cat.GetSpeaker(context.Background(), "sp1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", speaker.Name)
}

func TestHTTPCatalog_Search(t *testing.T) {
	cat := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/search", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "go", body["term"])

		w.Write([]byte(`{"sessions": [{"id": "s1", "title": "Intro to Go"}], "speakers": []}`))
	}))

	result, err := cat.Search(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, result.Sessions, 1)
	assert.Equal(t, "s1", result.Sessions[0].ID)
	assert.NotNil(t, result.Speakers)
}

func TestHTTPCatalog_ServerError(t *testing.T) {
	cat := newTestCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := cat.ListSessions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status: 500")
}
