package wheel

import (
	"fmt"
	"math"
)

// Normalize folds any finite angle into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Separation returns the short-way angular distance between two longitudes,
// in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedDelta returns the signed angle that carries from onto to,
// normalized to [-180, 180).
func SignedDelta(from, to float64) float64 {
	return Normalize(to-from+180) - 180
}

// DMS formats a degree value inside a unit as 12°34'.
func DMS(deg float64) string {
	whole := math.Floor(deg)
	minutes := math.Floor((deg - whole) * 60)
	if minutes >= 60 {
		whole++
		minutes = 0
	}
	return fmt.Sprintf("%d°%02d'", int(whole), int(minutes))
}
