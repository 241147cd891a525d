package persistence

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/engine"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "natal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProfileRoundTrip(t *testing.T) {
	db := openTemp(t)
	lat, lon := 40.7128, -74.006

	saved, err := db.SaveProfile("  Ada  ", engine.Birth{
		Date: "1948-04-09", Hour: 0.233, UTCOffset: -5, Latitude: &lat, Longitude: &lon,
	}, "from the almanac")
	require.NoError(t, err)

	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.Name)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := db.GetProfile(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	require.NotNil(t, got.Birth.Latitude)
	assert.Equal(t, lat, *got.Birth.Latitude)
	assert.Equal(t, "from the almanac", got.Notes)
}

func TestProfileWithoutLocation(t *testing.T) {
	db := openTemp(t)
	saved, err := db.SaveProfile("Noon", engine.Birth{Date: "2000-01-01", Hour: 12}, "")
	require.NoError(t, err)

	got, err := db.GetProfile(saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Birth.Latitude)
	assert.Nil(t, got.Birth.Longitude)
}

func TestSaveProfileValidates(t *testing.T) {
	db := openTemp(t)
	_, err := db.SaveProfile("", engine.Birth{Date: "2000-01-01"}, "")
	assert.Error(t, err)

	_, err = db.SaveProfile("Bad", engine.Birth{Date: "2000-02-30"}, "")
	assert.ErrorIs(t, err, engine.ErrInvalidDate)

	n, err := db.CountProfiles()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListAndDelete(t *testing.T) {
	db := openTemp(t)
	a, err := db.SaveProfile("A", engine.Birth{Date: "1990-05-05", Hour: 6}, "")
	require.NoError(t, err)
	b, err := db.SaveProfile("B", engine.Birth{Date: "1991-06-06", Hour: 7}, "")
	require.NoError(t, err)

	list, err := db.ListProfiles()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, []string{list[0].ID, list[1].ID})

	require.NoError(t, db.DeleteProfile(a.ID))
	_, err = db.GetProfile(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteProfile(a.ID), ErrNotFound)

	n, err := db.CountProfiles()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMeta(t *testing.T) {
	db := openTemp(t)
	_, err := db.GetMeta("rules_version")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.SaveMeta("rules_version", "v1"))
	require.NoError(t, db.SaveMeta("rules_version", "v2"))
	v, err := db.GetMeta("rules_version")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natal.db")
	db, err := Open(path)
	require.NoError(t, err)
	p, err := db.SaveProfile("Persisted", engine.Birth{Date: "2010-10-10", Hour: 10}, "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.GetProfile(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Name)
}
