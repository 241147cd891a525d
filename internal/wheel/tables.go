package wheel

// Zodiac is the tropical sign wheel: 12 signs of 30°, one sub-unit per degree.
var Zodiac = Config{
	Name:     "zodiac",
	Units:    12,
	SubUnits: 30,
	Offset:   0,
	Labels: []string{
		"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
		"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
	},
}

// GateOrder is the Rave Mandala sequence of gates starting at 28°15' Pisces.
var GateOrder = []int{
	25, 17, 21, 51, 42, 3, 27, 24, 2, 23, 8, 20, 16, 35, 45, 12,
	15, 52, 39, 53, 62, 56, 31, 33, 7, 4, 29, 59, 40, 64, 47, 6,
	46, 18, 48, 57, 32, 50, 28, 44, 1, 43, 14, 34, 9, 5, 26, 11,
	10, 58, 38, 54, 61, 60, 41, 19, 13, 49, 30, 55, 37, 63, 22, 36,
}

// Gates is the 64-gate wheel: 5.625° per gate, six lines of 0.9375°.
var Gates = Config{
	Name:     "gates",
	Units:    64,
	SubUnits: 6,
	Offset:   358.25,
	Order:    GateOrder,
}

// Nakshatras is the sidereal lunar mansion wheel: 27 × 13°20', four padas each.
var Nakshatras = Config{
	Name:     "nakshatras",
	Units:    27,
	SubUnits: 4,
	Offset:   0,
	Labels: []string{
		"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
		"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
		"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
		"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
		"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
	},
}
