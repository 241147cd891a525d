package vedic

// Rashi names, sidereal sign order from Mesha.
var rashiNames = [12]string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

// RashiName returns the Sanskrit sign name, or "Unknown".
func RashiName(i int) string {
	if i < 0 || i >= len(rashiNames) {
		return "Unknown"
	}
	return rashiNames[i]
}

// rashiLords uses the traditional seven-planet rulerships.
var rashiLords = [12]string{
	"Mars", "Venus", "Mercury", "Moon", "Sun", "Mercury",
	"Venus", "Mars", "Jupiter", "Saturn", "Saturn", "Jupiter",
}

// RashiLord returns the ruling graha of a sign.
func RashiLord(i int) string {
	if i < 0 || i >= len(rashiLords) {
		return "Unknown"
	}
	return rashiLords[i]
}

// dashaLords is the Vimshottari cycle; nakshatra i is ruled by lord i mod 9.
var dashaLords = [9]string{"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury"}

// dashaYears sums to 120.
var dashaYears = map[string]float64{
	"Ketu": 7, "Venus": 20, "Sun": 6, "Moon": 10, "Mars": 7,
	"Rahu": 18, "Jupiter": 16, "Saturn": 19, "Mercury": 17,
}

// NakshatraLord returns the dasha lord of nakshatra i.
func NakshatraLord(i int) string {
	if i < 0 {
		return "Unknown"
	}
	return dashaLords[i%9]
}

func lordIndex(lord string) int {
	for i, l := range dashaLords {
		if l == lord {
			return i
		}
	}
	return -1
}

// Gana temperament of a nakshatra.
type Gana uint8

const (
	Deva Gana = iota
	Manushya
	Rakshasa
)

func (g Gana) Name() string {
	switch g {
	case Deva:
		return "Deva"
	case Manushya:
		return "Manushya"
	case Rakshasa:
		return "Rakshasa"
	default:
		return "Unknown"
	}
}

var ganas = [27]Gana{
	Deva, Manushya, Rakshasa, Manushya, Deva, Manushya, Deva, Deva, Rakshasa,
	Rakshasa, Manushya, Manushya, Deva, Rakshasa, Deva, Rakshasa, Deva, Rakshasa,
	Rakshasa, Manushya, Manushya, Deva, Rakshasa, Rakshasa, Manushya, Manushya, Deva,
}

// GanaOf returns the gana of nakshatra i.
func GanaOf(i int) Gana { return ganas[((i%27)+27)%27] }

// Nadi of a nakshatra.
type Nadi uint8

const (
	Adi Nadi = iota
	Madhya
	Antya
)

func (n Nadi) Name() string {
	switch n {
	case Adi:
		return "Adi"
	case Madhya:
		return "Madhya"
	case Antya:
		return "Antya"
	default:
		return "Unknown"
	}
}

// NadiOf returns the nadi of nakshatra i. The sequence zig-zags
// Adi, Madhya, Antya, Antya, Madhya, Adi around the wheel.
func NadiOf(i int) Nadi {
	return [6]Nadi{Adi, Madhya, Antya, Antya, Madhya, Adi}[((i%27)+27)%27%6]
}

// Varna rank of a sign: water 4 (Brahmin), fire 3 (Kshatriya),
// earth 2 (Vaishya), air 1 (Shudra).
func VarnaOf(rashi int) int {
	return [4]int{3, 2, 1, 4}[((rashi%12)+12)%12%4]
}

// VarnaName names a varna rank.
func VarnaName(rank int) string {
	switch rank {
	case 4:
		return "Brahmin"
	case 3:
		return "Kshatriya"
	case 2:
		return "Vaishya"
	case 1:
		return "Shudra"
	default:
		return "Unknown"
	}
}

// Relationship between two grahas.
type Relationship int8

const (
	Enemy   Relationship = -1
	Neutral Relationship = 0
	Friend  Relationship = 1
)

// naturalFriends lists each graha's friends and enemies; everything else
// is neutral.
var naturalFriends = map[string]struct{ friends, enemies []string }{
	"Sun":     {[]string{"Moon", "Mars", "Jupiter"}, []string{"Venus", "Saturn"}},
	"Moon":    {[]string{"Sun", "Mercury"}, nil},
	"Mars":    {[]string{"Sun", "Moon", "Jupiter"}, []string{"Mercury"}},
	"Mercury": {[]string{"Sun", "Venus"}, []string{"Moon"}},
	"Jupiter": {[]string{"Sun", "Moon", "Mars"}, []string{"Mercury", "Venus"}},
	"Venus":   {[]string{"Mercury", "Saturn"}, []string{"Sun", "Moon"}},
	"Saturn":  {[]string{"Mercury", "Venus"}, []string{"Sun", "Moon", "Mars"}},
}

// Relation returns how graha a regards graha b.
func Relation(a, b string) Relationship {
	r := naturalFriends[a]
	for _, f := range r.friends {
		if f == b {
			return Friend
		}
	}
	for _, e := range r.enemies {
		if e == b {
			return Enemy
		}
	}
	return Neutral
}
