package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlane/dirview/internal/domain/session"
	"github.com/pathlane/dirview/internal/domain/surface"
	"github.com/pathlane/dirview/internal/infrastructure/config"
)

func newTestServer(t *testing.T) (*Server, *surface.Table) {
	t.Helper()
	table := surface.NewTable()
	return NewServer(config.Default(), table, nil, nil), table
}

func get(t *testing.T, s *Server, path string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	code, body := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestSurfacesAndSessions(t *testing.T) {
	s, table := newTestServer(t)

	ctx := table.Get("srf_test")
	sess, err := session.New(session.Options{Name: "docs"}, 1, "-al")
	require.NoError(t, err)
	require.NoError(t, ctx.Sessions.Insert(sess))
	ctx.SetCurrent(sess)

	code, body := get(t, s, "/surfaces")
	require.Equal(t, http.StatusOK, code)
	surfaces := body["surfaces"].([]any)
	require.Len(t, surfaces, 1)
	view := surfaces[0].(map[string]any)
	assert.Equal(t, "srf_test", view["id"])
	assert.Equal(t, string(sess.ID), view["current_session_id"])

	code, body = get(t, s, "/sessions")
	require.Equal(t, http.StatusOK, code)
	sessions := body["sessions"].([]any)
	require.Len(t, sessions, 1)
	sv := sessions[0].(map[string]any)
	assert.Equal(t, "docs", sv["name"])
	assert.Equal(t, float64(1), sv["depth"])
}

func TestStatsCollectsNames(t *testing.T) {
	s, table := newTestServer(t)

	for _, name := range []string{"alpha", "alpha", "beta"} {
		sess, err := session.New(session.Options{Name: name}, 1, "")
		require.NoError(t, err)
		require.NoError(t, table.Get("srf_one").Sessions.Insert(sess))
	}

	code, body := get(t, s, "/stats")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["total_sessions"])
	assert.Len(t, body["session_names"].([]any), 2, "names are deduplicated")
}
