package humandesign

import "fmt"

// Cross is the incarnation cross formed by the Sun and Earth gates of both
// moments.
type Cross struct {
	Name  string `json:"name"`
	Angle string `json:"angle"`
	Gates [4]int `json:"gates"` // personality Sun, personality Earth, design Sun, design Earth
	Label string `json:"label"`
}

// CrossOf names the cross for a profile angle. The theme is keyed by the
// personality Sun gate; an unknown angle or gate yields Unknown.
func CrossOf(angle string, pSun, pEarth, dSun, dEarth int, t *Tables) Cross {
	c := Cross{
		Name:  Unknown,
		Angle: angle,
		Gates: [4]int{pSun, pEarth, dSun, dEarth},
	}
	var (
		themes map[int]string
		prefix string
	)
	switch angle {
	case RightAngle:
		themes, prefix = t.RightAngleCrosses, "Right Angle Cross of "
	case Juxtaposition:
		themes, prefix = t.JuxtapositionCrosses, "Juxtaposition Cross of "
	case LeftAngle:
		themes, prefix = t.LeftAngleCrosses, "Left Angle Cross of "
	}
	if theme, ok := themes[pSun]; ok {
		c.Name = prefix + theme
	}
	c.Label = fmt.Sprintf("%s (%d/%d | %d/%d)", c.Name, pSun, pEarth, dSun, dEarth)
	return c
}
