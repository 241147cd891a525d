package aspects

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableOrder(t *testing.T) {
	require.NoError(t, Default.Validate())

	var names []string
	for _, r := range Default {
		names = append(names, r.Name)
	}
	want := []string{
		"conjunction", "opposition", "trine", "square", "sextile",
		"quincunx", "semi-sextile", "semi-square", "sesquiquadrate", "quintile",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("table order changed (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	cases := []struct {
		name         string
		a, b         float64
		includeMinor bool
		want         string
		ok           bool
	}{
		{"exact conjunction", 10, 10, false, "conjunction", true},
		{"conjunction across seam", 357, 3, false, "conjunction", true},
		{"wide trine", 0, 127.5, false, "trine", true},
		{"square", 100, 190, false, "square", true},
		{"opposition", 45, 222, false, "opposition", true},
		{"sextile", 300, 0, false, "sextile", true},
		{"quincunx needs minor", 0, 150, false, "", false},
		{"quincunx", 0, 150, true, "quincunx", true},
		{"nothing", 0, 20, true, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := Default.Find(tc.a, tc.b, tc.includeMinor)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, m.Relation.Name)
			}
		})
	}
}

func TestFindOrbIsDeviationFromTarget(t *testing.T) {
	m, ok := Default.Find(0, 124, false)
	require.True(t, ok)
	assert.Equal(t, "trine", m.Relation.Name)
	assert.InDelta(t, 4, m.Orb, 1e-12)
	assert.InDelta(t, 124, m.Separation, 1e-12)
}

func TestFindFirstMatchWinsAtSharedBoundary(t *testing.T) {
	// Separation 45 sits exactly on the edge of both windows.
	table := Table{
		{Name: "low", Angle: 40, Orb: 5},
		{Name: "high", Angle: 50, Orb: 5},
	}
	m, ok := table.Find(0, 45, false)
	require.True(t, ok)
	assert.Equal(t, "low", m.Relation.Name)

	reversed := Table{table[1], table[0]}
	m, ok = reversed.Find(0, 45, false)
	require.True(t, ok)
	assert.Equal(t, "high", m.Relation.Name)
}

func TestFindFirstMatchNotBestMatch(t *testing.T) {
	table := Table{
		{Name: "loose", Angle: 60, Orb: 10},
		{Name: "tight", Angle: 66, Orb: 1},
	}
	m, ok := table.Find(0, 66, false)
	require.True(t, ok)
	assert.Equal(t, "loose", m.Relation.Name)
}

func TestValidateRejectsBadTables(t *testing.T) {
	assert.Error(t, Table{}.Validate())
	assert.Error(t, Table{{Name: "a"}, {Name: "a"}}.Validate())
	assert.Error(t, Table{{Name: "wide", Angle: 200}}.Validate())
	assert.Error(t, Table{{Name: "neg", Orb: -1}}.Validate())
}

func TestBetweenIsDeterministicAndAMajor(t *testing.T) {
	as := []Point{{"Sun", 0}, {"Moon", 90}}
	bs := []Point{{"Sun", 120}, {"Moon", 180}, {"Venus", 0}}

	got := Default.Between(as, bs, false)
	var pairs []string
	for _, a := range got {
		pairs = append(pairs, a.BodyA+"-"+a.BodyB+":"+a.Name)
	}
	want := []string{
		"Sun-Sun:trine",
		"Sun-Moon:opposition",
		"Sun-Venus:conjunction",
		"Moon-Moon:square",
		"Moon-Venus:square",
	}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Fatalf("unexpected scan (-want +got):\n%s", diff)
	}
	assert.Equal(t, got, Default.Between(as, bs, false))
}

func TestWithinSkipsSelfPairs(t *testing.T) {
	points := []Point{{"Sun", 10}, {"Moon", 10}, {"Mars", 100}}
	got := Default.Within(points, false)
	require.Len(t, got, 3)
	assert.Equal(t, "Sun", got[0].BodyA)
	assert.Equal(t, "Moon", got[0].BodyB)
	assert.Equal(t, "conjunction", got[0].Name)
	assert.Equal(t, "square", got[1].Name)
	assert.Equal(t, "square", got[2].Name)
}
