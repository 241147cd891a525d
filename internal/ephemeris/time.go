package ephemeris

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"
)

// Astronomical constants.
const (
	J2000     = 2451545.0 // Julian day of 2000-01-01 12:00 TT
	kmPerAU   = 149597870.7
	degPerRad = 180 / math.Pi

	// schlyterEpoch is JD of 1999-12-31 0h, day zero of the orbital elements.
	schlyterEpoch = 2451543.5

	// secondsPerDegree converts sidereal time in seconds to degrees.
	secondsPerDegree = 86400.0 / 360
)

// JulianDay converts a moment to a Julian day number (UT). The difference
// between UT and dynamical time, about a minute over 1900–2100, is ignored.
func JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// centuries counts Julian centuries from J2000.
func centuries(jd float64) float64 {
	return base.J2000Century(jd)
}

// Obliquity returns the mean obliquity of the ecliptic for the moment.
func Obliquity(t time.Time) float64 {
	return nutation.MeanObliquity(JulianDay(t)).Deg()
}

// GreenwichSiderealTime returns mean sidereal time at Greenwich in degrees.
func GreenwichSiderealTime(t time.Time) float64 {
	return normalize(float64(sidereal.Mean(JulianDay(t))) / secondsPerDegree)
}

// LocalSiderealTime returns local mean sidereal time in degrees for an
// east-positive longitude.
func LocalSiderealTime(t time.Time, longitude float64) float64 {
	return normalize(GreenwichSiderealTime(t) + longitude)
}

func normalize(deg float64) float64 { return wheel.Normalize(deg) }

func sind(d float64) float64 { return math.Sin(d / degPerRad) }
func cosd(d float64) float64 { return math.Cos(d / degPerRad) }
func tand(d float64) float64 { return math.Tan(d / degPerRad) }

func atan2d(y, x float64) float64 { return math.Atan2(y, x) * degPerRad }
