package monitor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/cmm/coord"
	"github.com/mastercactapus/cmm/session"
)

func TestServer_GetSession(t *testing.T) {
	s := NewServer(zerolog.Nop())
	defer s.Shutdown()

	s.Update(session.Snapshot{
		State:    "grid-traversal",
		Mode:     "rectangle",
		Index:    2,
		GridSize: 9,
		Position: coord.Point{X: 1, Y: 2, Z: 3},
		Records:  2,
	})

	req := httptest.NewRequest("GET", "/api/session", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "grid-traversal", snap.State)
	assert.Equal(t, 2, snap.Index)
	assert.Equal(t, coord.Point{X: 1, Y: 2, Z: 3}, snap.Position)
}

func TestServer_GetSession_Empty(t *testing.T) {
	s := NewServer(zerolog.Nop())
	defer s.Shutdown()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/api/session", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
