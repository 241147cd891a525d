package ephemeris

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var j2000Noon = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

func TestJulianDay(t *testing.T) {
	assert.InDelta(t, J2000, JulianDay(j2000Noon), 1e-9)
	assert.InDelta(t, 2432650.718, JulianDay(time.Date(1948, 4, 9, 5, 13, 59, 0, time.UTC)), 1e-3)
	// Julian day is independent of the time zone the moment is expressed in.
	est := time.FixedZone("EST", -5*3600)
	assert.InDelta(t, JulianDay(j2000Noon), JulianDay(j2000Noon.In(est)), 1e-9)
}

func TestOrbitalMatchesReferencePositions(t *testing.T) {
	// Reference longitudes for 2000-01-01 12:00 UT, degrees, equinox of date.
	want := map[Body]struct {
		lon, tol float64
	}{
		Sun:       {280.37, 0.05},
		Moon:      {223.32, 0.15},
		Mercury:   {271.89, 0.1},
		Venus:     {241.57, 0.1},
		Mars:      {327.96, 0.1},
		Jupiter:   {25.25, 0.1},
		Saturn:    {40.40, 0.1},
		Uranus:    {314.81, 0.1},
		Neptune:   {303.19, 0.1},
		Pluto:     {251.45, 0.15},
		NorthNode: {125.04, 0.05},
	}

	o := NewOrbital()
	for body, w := range want {
		pos, err := o.Position(body, j2000Noon)
		require.NoError(t, err, body.Name())
		assert.InDelta(t, w.lon, pos.Longitude, w.tol, body.Name())
	}
}

func TestOrbitalDistances(t *testing.T) {
	o := NewOrbital()
	sun, err := o.Position(Sun, j2000Noon)
	require.NoError(t, err)
	assert.InDelta(t, 0.9833*kmPerAU, sun.DistanceKm, 0.002*kmPerAU)

	moon, err := o.Position(Moon, j2000Noon)
	require.NoError(t, err)
	assert.Greater(t, moon.DistanceKm, 356000.0)
	assert.Less(t, moon.DistanceKm, 407000.0)
}

func TestOrbitalUnknownBody(t *testing.T) {
	_, err := NewOrbital().Position(Body(42), j2000Noon)
	assert.True(t, errors.Is(err, ErrUnknownBody))
}

func TestNodeSymmetry(t *testing.T) {
	o := NewOrbital()
	for ts := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC); ts.Year() < 2100; ts = ts.AddDate(3, 1, 7) {
		north, err := o.Position(NorthNode, ts)
		require.NoError(t, err)
		south := SouthNode(north.Longitude)
		sep := south - north.Longitude
		if sep < 0 {
			sep += 360
		}
		assert.InDelta(t, 180, sep, 1e-9, ts.String())
	}
}

func TestHorizonAngles(t *testing.T) {
	london := Location{Latitude: 51.5, Longitude: -0.13}
	h := HorizonAngles(j2000Noon, london)
	assert.InDelta(t, 24.01, h.Ascendant, 0.05)
	assert.InDelta(t, 279.49, h.Midheaven, 0.05)
	assert.InDelta(t, 23.439, h.Obliquity, 0.001)

	equator := HorizonAngles(j2000Noon, Location{})
	assert.InDelta(t, 11.38, equator.Ascendant, 0.05)
}

func TestLocationValidate(t *testing.T) {
	assert.NoError(t, Location{Latitude: 45, Longitude: -120}.Validate())
	assert.Error(t, Location{Latitude: 91}.Validate())
	assert.Error(t, Location{Longitude: 181}.Validate())
}

func TestParseBody(t *testing.T) {
	b, err := ParseBody("north_node")
	require.NoError(t, err)
	assert.Equal(t, NorthNode, b)

	b, err = ParseBody("Venus")
	require.NoError(t, err)
	assert.Equal(t, Venus, b)

	_, err = ParseBody("vulcan")
	assert.ErrorIs(t, err, ErrUnknownBody)
}

type countingProvider struct {
	calls atomic.Int64
}

func (c *countingProvider) Position(b Body, t time.Time) (Position, error) {
	c.calls.Add(1)
	return Position{Longitude: float64(b) * 10}, nil
}

func TestCachedMemoizesPerBodyAndMoment(t *testing.T) {
	inner := &countingProvider{}
	c, err := NewCached(inner, 16)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		pos, err := c.Position(Mars, j2000Noon)
		require.NoError(t, err)
		assert.Equal(t, 40.0, pos.Longitude)
	}
	_, err = c.Position(Venus, j2000Noon)
	require.NoError(t, err)
	// Same instant expressed in another zone shares the entry.
	_, err = c.Position(Mars, j2000Noon.In(time.FixedZone("X", 3600)))
	require.NoError(t, err)

	assert.Equal(t, int64(2), inner.calls.Load())
	stats := c.Stats()
	assert.Equal(t, uint64(3), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 2, stats.Entries)
}

func TestRemoteProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/position" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("body") == "pluto" {
			http.Error(w, "no pluto", http.StatusServiceUnavailable)
			return
		}
		_, err := time.Parse(time.RFC3339Nano, r.URL.Query().Get("t"))
		if err != nil {
			http.Error(w, "bad time", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"longitude":   370.5,
			"latitude":    1.25,
			"distance_km": 1000.0,
		})
	}))
	defer srv.Close()

	r := NewRemote(srv.URL + "/")
	require.NotNil(t, r)

	pos, err := r.Position(Mars, j2000Noon)
	require.NoError(t, err)
	assert.InDelta(t, 10.5, pos.Longitude, 1e-12)
	assert.Equal(t, 1.25, pos.Latitude)
	assert.Equal(t, 1000.0, pos.DistanceKm)

	_, err = r.Position(Pluto, j2000Noon)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	assert.Nil(t, NewRemote("  "))
}

func TestLongitudesStayBelow360(t *testing.T) {
	// Mod then +360 rounds a tiny negative up to exactly 360.
	assert.Equal(t, 0.0, normalize(-1e-14))
	assert.Less(t, SouthNode(math.Nextafter(-180, -360)), 360.0)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"longitude": -1e-14})
	}))
	defer srv.Close()

	pos, err := NewRemote(srv.URL).Position(Venus, j2000Noon)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pos.Longitude, 0.0)
	assert.Less(t, pos.Longitude, 360.0)
}

func TestSelect(t *testing.T) {
	p, err := Select("", 0)
	require.NoError(t, err)
	assert.IsType(t, &Orbital{}, p)

	p, err = Select(" https://ephemeris.example/ ", 0)
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, p)

	p, err = Select("", 32)
	require.NoError(t, err)
	c, ok := p.(*Cached)
	require.True(t, ok)
	assert.IsType(t, &Orbital{}, c.inner)
}
