package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/solar"
)

// precessionPerCentury is general precession in longitude, degrees per
// Julian century.
const precessionPerCentury = 1.396971

// Orbital is the built-in provider. The Sun, Moon, lunar node and Pluto
// come from the series in Meeus' Astronomical Algorithms. Mercury through
// Neptune use mean orbital elements with the principal periodic
// perturbations of Jupiter, Saturn and Uranus, after Paul Schlyter's "How
// to compute planetary positions", good to about one arc-minute for the
// inner planets and a few for the outer ones over 1800–2100.
type Orbital struct{}

// NewOrbital returns the built-in provider.
func NewOrbital() *Orbital {
	return &Orbital{}
}

// elements are the osculating elements at day number d.
type elements struct {
	N float64 // longitude of the ascending node
	i float64 // inclination
	w float64 // argument of perihelion
	a float64 // semi-major axis (AU, Earth radii for the Moon)
	e float64 // eccentricity
	M float64 // mean anomaly
}

type elementFunc func(d float64) elements

var planetElements = map[Body]elementFunc{
	Mercury: func(d float64) elements {
		return elements{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d, 0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	},
	Venus: func(d float64) elements {
		return elements{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d, 0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	},
	Mars: func(d float64) elements {
		return elements{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d, 1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	},
	Jupiter: func(d float64) elements {
		return elements{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d, 5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	},
	Saturn: func(d float64) elements {
		return elements{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d, 9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	},
	Uranus: func(d float64) elements {
		return elements{74.0005 + 1.3978e-5*d, 0.7733 + 1.9e-8*d, 96.6612 + 3.0565e-5*d, 19.18171 - 1.55e-8*d, 0.047318 + 7.45e-9*d, 142.5905 + 0.011725806*d}
	},
	Neptune: func(d float64) elements {
		return elements{131.7806 + 3.0173e-5*d, 1.7700 - 2.55e-7*d, 272.8461 - 6.027e-6*d, 30.05826 + 3.313e-8*d, 0.008606 + 2.15e-9*d, 260.2471 + 0.005995147*d}
	},
}

// Position implements Provider.
func (o *Orbital) Position(b Body, t time.Time) (Position, error) {
	jd := JulianDay(t)
	switch b {
	case Sun:
		tc := centuries(jd)
		return Position{
			Longitude:  normalize(solar.ApparentLongitude(tc).Deg()),
			DistanceKm: solar.Radius(tc) * kmPerAU,
		}, nil
	case Moon:
		lon, lat, dist := moonposition.Position(jd)
		dpsi, _ := nutation.Nutation(jd)
		return Position{
			Longitude:  normalize(lon.Deg() + dpsi.Deg()),
			Latitude:   lat.Deg(),
			DistanceKm: dist,
		}, nil
	case NorthNode:
		return Position{Longitude: normalize(moonposition.Node(jd).Deg())}, nil
	case Pluto:
		// The series is referred to the J2000 equinox.
		l, lat, r := pluto.Heliocentric(jd)
		lon := l.Deg() + precessionPerCentury*centuries(jd)
		return geocentric(jd, lon, lat.Deg(), r), nil
	}
	if _, ok := planetElements[b]; !ok {
		return Position{}, fmt.Errorf("%w: %d", ErrUnknownBody, b)
	}
	lon, lat, r := heliocentric(b, jd-schlyterEpoch)
	return geocentric(jd, lon, lat, r), nil
}

// eccentricAnomaly solves Kepler's equation by Newton iteration.
func eccentricAnomaly(M, e float64) float64 {
	E := M + e*degPerRad*sind(M)*(1+e*cosd(M))
	for i := 0; i < 12; i++ {
		next := E - (E-e*degPerRad*sind(E)-M)/(1-e*cosd(E))
		if math.Abs(next-E) < 1e-8 {
			return next
		}
		E = next
	}
	return E
}

// orbitToEcliptic converts orbital elements to ecliptic longitude, latitude
// and radius in the frame of the central body.
func orbitToEcliptic(el elements) (lon, lat, r float64) {
	M := normalize(el.M)
	E := eccentricAnomaly(M, el.e)
	xv := el.a * (cosd(E) - el.e)
	yv := el.a * math.Sqrt(1-el.e*el.e) * sind(E)
	v := atan2d(yv, xv)
	r = math.Hypot(xv, yv)

	xh := r * (cosd(el.N)*cosd(v+el.w) - sind(el.N)*sind(v+el.w)*cosd(el.i))
	yh := r * (sind(el.N)*cosd(v+el.w) + cosd(el.N)*sind(v+el.w)*cosd(el.i))
	zh := r * sind(v+el.w) * sind(el.i)

	lon = atan2d(yh, xh)
	lat = atan2d(zh, math.Hypot(xh, yh))
	return lon, lat, r
}

func heliocentric(b Body, d float64) (lon, lat, r float64) {
	lon, lat, r = orbitToEcliptic(planetElements[b](d))

	Mj := normalize(planetElements[Jupiter](d).M)
	Ms := normalize(planetElements[Saturn](d).M)
	Mu := normalize(planetElements[Uranus](d).M)

	switch b {
	case Jupiter:
		lon += -0.332*sind(2*Mj-5*Ms-67.6) -
			0.056*sind(2*Mj-2*Ms+21) +
			0.042*sind(3*Mj-5*Ms+21) -
			0.036*sind(Mj-2*Ms) +
			0.022*cosd(Mj-Ms) +
			0.023*sind(2*Mj-3*Ms+52) -
			0.016*sind(Mj-5*Ms-69)
	case Saturn:
		lon += 0.812*sind(2*Mj-5*Ms-67.6) -
			0.229*cosd(2*Mj-4*Ms-2) +
			0.119*sind(Mj-2*Ms-3) +
			0.046*sind(2*Mj-6*Ms-69) +
			0.014*sind(Mj-3*Ms+32)
		lat += -0.020*cosd(2*Mj-4*Ms-2) + 0.018*sind(2*Mj-6*Ms-49)
	case Uranus:
		lon += 0.040*sind(Ms-2*Mu+6) +
			0.035*sind(Ms-3*Mu+33) -
			0.015*sind(Mj-Mu+20)
	}
	return lon, lat, r
}

// geocentric shifts a heliocentric position to the Earth's centre. The
// Earth sits opposite the Sun's true geometric longitude.
func geocentric(jd, lon, lat, r float64) Position {
	xh := r * cosd(lon) * cosd(lat)
	yh := r * sind(lon) * cosd(lat)
	zh := r * sind(lat)

	tc := centuries(jd)
	sunLon, _ := solar.True(tc)
	sunR := solar.Radius(tc)
	xg := xh + sunR*cosd(sunLon.Deg())
	yg := yh + sunR*sind(sunLon.Deg())
	zg := zh

	return Position{
		Longitude:  normalize(atan2d(yg, xg)),
		Latitude:   atan2d(zg, math.Hypot(xg, yg)),
		DistanceKm: math.Sqrt(xg*xg+yg*yg+zg*zg) * kmPerAU,
	}
}
