package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/ephemeris"
)

// Boundary validation errors. Callers match them with errors.Is.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidLocation = errors.New("invalid location")
)

// Widest offsets in use anywhere (Baker Island to Line Islands).
const maxUTCOffset = 14

// Birth is a birth moment as the caller knows it: a calendar date, a local
// decimal hour and an explicit UTC offset. Coordinates are optional but come
// as a pair.
type Birth struct {
	Date      string   `json:"date"`       // YYYY-MM-DD
	Hour      float64  `json:"hour"`       // local decimal hour, [0, 24)
	UTCOffset float64  `json:"utc_offset"` // hours east of Greenwich
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Moment converts the birth to a UTC instant. It never substitutes a
// default for a malformed field.
func (b Birth) Moment() (time.Time, error) {
	day, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, b.Date)
	}
	if !finite(b.Hour) || b.Hour < 0 || b.Hour >= 24 {
		return time.Time{}, fmt.Errorf("%w: hour %v outside [0, 24)", ErrInvalidTime, b.Hour)
	}
	if !finite(b.UTCOffset) || math.Abs(b.UTCOffset) > maxUTCOffset {
		return time.Time{}, fmt.Errorf("%w: utc offset %v outside [-14, 14]", ErrInvalidTime, b.UTCOffset)
	}
	local := time.Duration((b.Hour - b.UTCOffset) * float64(time.Hour))
	return day.Add(local).UTC(), nil
}

// Location returns the observer, or nil when no coordinates were given.
func (b Birth) Location() (*ephemeris.Location, error) {
	if b.Latitude == nil && b.Longitude == nil {
		return nil, nil
	}
	if b.Latitude == nil || b.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude and longitude must be given together", ErrInvalidLocation)
	}
	loc := ephemeris.Location{Latitude: *b.Latitude, Longitude: *b.Longitude}
	if !finite(loc.Latitude) || !finite(loc.Longitude) {
		return nil, fmt.Errorf("%w: coordinates must be finite", ErrInvalidLocation)
	}
	if err := loc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	return &loc, nil
}

// Validate checks every field without computing anything.
func (b Birth) Validate() error {
	if _, err := b.Moment(); err != nil {
		return err
	}
	_, err := b.Location()
	return err
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
