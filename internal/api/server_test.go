package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/engine"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/persistence"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newServer(t *testing.T, withDB bool) (*Server, http.Handler) {
	t.Helper()
	s := &Server{Engine: engine.New(ephemeris.NewOrbital()), AdminKey: "secret"}
	if withDB {
		db, err := persistence.Open(filepath.Join(t.TempDir(), "api.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		s.DB = db
	}
	h := s.Handler()
	t.Cleanup(s.Close)
	return s, h
}

func do(h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	_, h := newServer(t, true)
	rec := do(h, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "rave-2024.1", status["rules_version"])
	assert.Equal(t, true, status["profiles"])
	assert.EqualValues(t, 0, status["profile_count"])
}

func TestChartEndpoints(t *testing.T) {
	_, h := newServer(t, false)

	rec := do(h, http.MethodGet, "/api/v1/astrology?date=2000-01-01&hour=12", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var astro struct {
		Placements []struct {
			Body string `json:"body"`
			Sign string `json:"sign"`
		} `json:"placements"`
		Angles struct {
			Status string `json:"status"`
		} `json:"angles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &astro))
	require.NotEmpty(t, astro.Placements)
	assert.Equal(t, "Sun", astro.Placements[0].Body)
	assert.Equal(t, "Capricorn", astro.Placements[0].Sign)
	assert.Equal(t, "no_location", astro.Angles.Status)

	rec = do(h, http.MethodGet, "/api/v1/humandesign?date=1948-04-09&hour=0.233&offset=-5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var hd struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
		Definition string `json:"definition"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hd))
	assert.Equal(t, "Manifestor", hd.Type.Name)
	assert.Equal(t, "Single Definition", hd.Definition)

	rec = do(h, http.MethodGet, "/api/v1/vedic?date=2000-01-01&hour=12&lat=51.5&lon=-0.13", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(h, http.MethodGet, "/api/v1/genekeys?date=2000-01-01&hour=12", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChartRejectsBadInput(t *testing.T) {
	_, h := newServer(t, false)
	for name, q := range map[string]string{
		"bad date":     "date=2001-02-30&hour=1",
		"missing hour": "date=2001-02-03",
		"bad hour":     "date=2001-02-03&hour=noon",
		"hour 24":      "date=2001-02-03&hour=24",
		"lat only":     "date=2001-02-03&hour=1&lat=10",
		"bad lon":      "date=2001-02-03&hour=1&lat=10&lon=east",
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(h, http.MethodGet, "/api/v1/astrology?"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestPositionServesRemoteProvider(t *testing.T) {
	_, h := newServer(t, false)
	ts := httptest.NewServer(h)
	defer ts.Close()

	at := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	remote := ephemeris.NewRemote(ts.URL)
	got, err := remote.Position(ephemeris.Moon, at)
	require.NoError(t, err)
	want, err := ephemeris.NewOrbital().Position(ephemeris.Moon, at)
	require.NoError(t, err)
	assert.InDelta(t, want.Longitude, got.Longitude, 1e-9)

	rec := do(h, http.MethodGet, "/api/v1/position?body=vulcan&t=2000-01-01T00:00:00Z", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(h, http.MethodGet, "/api/v1/position?body=sun&t=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const pairBody = `{"a": {"date": "1948-04-09", "hour": 0.233, "utc_offset": -5},
	"b": {"date": "2000-01-01", "hour": 12}}`

func TestCompare(t *testing.T) {
	_, h := newServer(t, false)

	rec := do(h, http.MethodPost, "/api/v1/compare/humandesign", pairBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		TypePair string  `json:"type_pair"`
		Score    float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Manifestor / Manifesting Generator", res.TypePair)

	for _, kind := range []string{"astrology", "genekeys", "vedic"} {
		rec = do(h, http.MethodPost, "/api/v1/compare/"+kind, pairBody)
		assert.Equal(t, http.StatusOK, rec.Code, kind)
	}

	rec = do(h, http.MethodPost, "/api/v1/compare/tarot", pairBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/compare/vedic", `{"a": {"date": "2000-01-01"}, "b": {"date": "bad"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "chart b")

	rec = do(h, http.MethodPost, "/api/v1/compare/vedic", `{"a": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/api/v1/compare/vedic", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCompareRateLimited(t *testing.T) {
	s := &Server{Engine: engine.New(ephemeris.NewOrbital()), CompareLimit: 1}
	h := s.Handler()
	defer s.Close()

	rec := do(h, http.MethodPost, "/api/v1/compare/vedic", pairBody)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(h, http.MethodPost, "/api/v1/compare/vedic", pairBody)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = do(h, http.MethodPost, "/api/v1/compare/vedic", pairBody, "X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their budget")
}

func TestProfiles(t *testing.T) {
	_, h := newServer(t, true)
	auth := []string{"Authorization", "Bearer secret"}
	create := `{"name": "Ada", "birth": {"date": "1948-04-09", "hour": 0.233, "utc_offset": -5}}`

	rec := do(h, http.MethodPost, "/api/v1/profiles", create)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(h, http.MethodPost, "/api/v1/profiles", create, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/profiles", create, auth...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p persistence.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Ada", p.Name)

	rec = do(h, http.MethodPost, "/api/v1/profiles", `{"name": "Bad", "birth": {"date": "1900-02-29"}}`, auth...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(h, http.MethodPost, "/api/v1/profiles", `{"birth": {"date": "2000-01-01"}}`, auth...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/api/v1/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []persistence.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = do(h, http.MethodGet, "/api/v1/profiles/"+p.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/v1/humandesign?profile="+p.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Manifestor"`)

	rec = do(h, http.MethodPost, "/api/v1/compare/genekeys",
		`{"a_profile": "`+p.ID+`", "b": {"date": "2000-01-01", "hour": 12}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodDelete, "/api/v1/profiles/"+p.ID, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(h, http.MethodDelete, "/api/v1/profiles/"+p.ID, "", auth...)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(h, http.MethodGet, "/api/v1/profiles/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(h, http.MethodGet, "/api/v1/astrology?profile="+p.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfilesDisabled(t *testing.T) {
	s, h := newServer(t, false)
	rec := do(h, http.MethodGet, "/api/v1/profiles", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = do(h, http.MethodGet, "/api/v1/vedic?profile=abc", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.AdminKey = ""
	rec = do(h, http.MethodDelete, "/api/v1/profiles/abc", "", "Authorization", "Bearer ")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORS(t *testing.T) {
	s := &Server{Engine: engine.New(ephemeris.NewOrbital()), CORSOrigins: []string{"https://natal.example"}}
	h := s.Handler()
	defer s.Close()

	rec := do(h, http.MethodOptions, "/api/v1/compare/vedic", "", "Origin", "https://natal.example")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://natal.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(h, http.MethodGet, "/api/v1/status", "", "Origin", "https://evil.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(h, http.MethodGet, "/api/v1/status", "", "Origin", "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
