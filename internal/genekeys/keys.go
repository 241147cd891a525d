// Package genekeys reads a Human Design chart as a Gene Keys hologenetic
// profile: each gate becomes a key with a shadow, gift and siddhi.
package genekeys

import "github.com/Unforced-Dev/natal-engine-sub000/internal/wheel"

// Key is one of the 64 Gene Keys.
type Key struct {
	Number  int    `json:"number"`
	Shadow  string `json:"shadow"`
	Gift    string `json:"gift"`
	Siddhi  string `json:"siddhi"`
	Partner int    `json:"programming_partner"`
}

var frequencies = [65][3]string{
	1:  {"Entropy", "Freshness", "Beauty"},
	2:  {"Dislocation", "Orientation", "Unity"},
	3:  {"Chaos", "Innovation", "Innocence"},
	4:  {"Intolerance", "Understanding", "Forgiveness"},
	5:  {"Impatience", "Patience", "Timelessness"},
	6:  {"Conflict", "Diplomacy", "Peace"},
	7:  {"Division", "Guidance", "Virtue"},
	8:  {"Mediocrity", "Style", "Exquisiteness"},
	9:  {"Inertia", "Determination", "Invincibility"},
	10: {"Self-Obsession", "Naturalness", "Being"},
	11: {"Obscurity", "Idealism", "Light"},
	12: {"Vanity", "Discrimination", "Purity"},
	13: {"Discord", "Discernment", "Empathy"},
	14: {"Compromise", "Competence", "Bounteousness"},
	15: {"Dullness", "Magnetism", "Florescence"},
	16: {"Indifference", "Versatility", "Mastery"},
	17: {"Opinion", "Far-Sightedness", "Omniscience"},
	18: {"Judgement", "Integrity", "Perfection"},
	19: {"Co-Dependence", "Sensitivity", "Sacrifice"},
	20: {"Superficiality", "Self-Assurance", "Presence"},
	21: {"Control", "Authority", "Valour"},
	22: {"Dishonour", "Graciousness", "Grace"},
	23: {"Complexity", "Simplicity", "Quintessence"},
	24: {"Addiction", "Invention", "Silence"},
	25: {"Constriction", "Acceptance", "Universal Love"},
	26: {"Pride", "Artfulness", "Invisibility"},
	27: {"Selfishness", "Altruism", "Selflessness"},
	28: {"Purposelessness", "Totality", "Immortality"},
	29: {"Half-Heartedness", "Commitment", "Devotion"},
	30: {"Desire", "Lightness", "Rapture"},
	31: {"Arrogance", "Leadership", "Humility"},
	32: {"Failure", "Preservation", "Veneration"},
	33: {"Forgetting", "Mindfulness", "Revelation"},
	34: {"Force", "Strength", "Majesty"},
	35: {"Hunger", "Adventure", "Boundlessness"},
	36: {"Turbulence", "Humanity", "Compassion"},
	37: {"Weakness", "Equality", "Tenderness"},
	38: {"Struggle", "Perseverance", "Honour"},
	39: {"Provocation", "Dynamism", "Liberation"},
	40: {"Exhaustion", "Resolve", "Divine Will"},
	41: {"Fantasy", "Anticipation", "Emanation"},
	42: {"Expectation", "Detachment", "Celebration"},
	43: {"Deafness", "Insight", "Epiphany"},
	44: {"Interference", "Teamwork", "Synarchy"},
	45: {"Dominance", "Synergy", "Communion"},
	46: {"Seriousness", "Delight", "Ecstasy"},
	47: {"Oppression", "Transmutation", "Transfiguration"},
	48: {"Inadequacy", "Resourcefulness", "Wisdom"},
	49: {"Reaction", "Revolution", "Rebirth"},
	50: {"Corruption", "Equilibrium", "Harmony"},
	51: {"Agitation", "Initiative", "Awakening"},
	52: {"Stress", "Restraint", "Stillness"},
	53: {"Immaturity", "Expansion", "Superabundance"},
	54: {"Greed", "Aspiration", "Ascension"},
	55: {"Victimisation", "Freedom", "Freedom"},
	56: {"Distraction", "Enrichment", "Intoxication"},
	57: {"Unease", "Intuition", "Clarity"},
	58: {"Dissatisfaction", "Vitality", "Bliss"},
	59: {"Dishonesty", "Intimacy", "Transparency"},
	60: {"Limitation", "Realism", "Justice"},
	61: {"Psychosis", "Inspiration", "Sanctity"},
	62: {"Intellect", "Precision", "Impeccability"},
	63: {"Doubt", "Inquiry", "Truth"},
	64: {"Confusion", "Imagination", "Illumination"},
}

// Lookup returns key n. Keys outside 1..64 come back with Unknown
// frequencies and no partner.
func Lookup(n int) Key {
	if n < 1 || n > 64 {
		return Key{Number: n, Shadow: "Unknown", Gift: "Unknown", Siddhi: "Unknown"}
	}
	f := frequencies[n]
	return Key{
		Number:  n,
		Shadow:  f[0],
		Gift:    f[1],
		Siddhi:  f[2],
		Partner: wheel.Gates.Opposite(n),
	}
}
