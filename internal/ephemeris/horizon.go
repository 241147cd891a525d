package ephemeris

import (
	"math"
	"time"
)

// Horizon holds the angles of an observer's local horizon and meridian.
type Horizon struct {
	Ascendant         float64 `json:"ascendant"`
	Midheaven         float64 `json:"midheaven"`
	Obliquity         float64 `json:"obliquity"`
	LocalSiderealTime float64 `json:"local_sidereal_time"`
}

// HorizonAngles computes the ascendant and midheaven for an observer from
// local sidereal time and the mean obliquity of date.
func HorizonAngles(t time.Time, loc Location) Horizon {
	eps := Obliquity(t)
	lst := LocalSiderealTime(t, loc.Longitude)
	return Horizon{
		Ascendant:         ascendant(lst, loc.Latitude, eps),
		Midheaven:         midheaven(lst, eps),
		Obliquity:         eps,
		LocalSiderealTime: lst,
	}
}

func midheaven(ramc, eps float64) float64 {
	return normalize(atan2d(sind(ramc), cosd(ramc)*cosd(eps)))
}

func ascendant(ramc, lat, eps float64) float64 {
	// Clamp the pole so tan() stays finite; the ascendant is undefined there.
	if lat > 89.999 {
		lat = 89.999
	} else if lat < -89.999 {
		lat = -89.999
	}
	y := cosd(ramc)
	x := -(sind(ramc)*cosd(eps) + tand(lat)*sind(eps))
	asc := normalize(math.Atan2(y, x) * degPerRad)
	return asc
}
