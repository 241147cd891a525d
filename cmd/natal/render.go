package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/astrology"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/compat"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/genekeys"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/humandesign"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/vedic"
)

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#7a8699")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(muted)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
)

// formatHour renders a local decimal hour with its offset, e.g. "00:13 UTC-5".
func formatHour(hour, offset float64) string {
	total := int(math.Round(hour * 60))
	off := fmt.Sprintf("%+g", offset)
	if offset == 0 {
		off = ""
	}
	return fmt.Sprintf("%02d:%02d UTC%s", total/60%24, total%60, off)
}

func field(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), value)
}

func section(title string, lines ...string) string {
	return titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
}

func moment(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func renderAstrology(c *astrology.Chart) string {
	var rows []string
	for _, p := range c.Placements {
		r := ""
		if p.Retrograde {
			r = " R"
		}
		house := ""
		if p.House > 0 {
			house = mutedStyle.Render(fmt.Sprintf("  house %d", p.House))
		}
		rows = append(rows, fmt.Sprintf("%-11s %s%s%s", p.Body, p.Formatted, r, house))
	}

	summary := []string{
		field("Moment", moment(c.Moment)),
		field("Dominant element", c.DominantElement),
		field("Moon phase", fmt.Sprintf("%s (%.0f%% lit)", c.MoonPhase.Name, c.MoonPhase.Illumination*100)),
	}
	if c.Angles.Ascendant != nil {
		summary = append(summary, field("Ascendant", c.Angles.Ascendant.Formatted))
	}
	if c.Angles.Midheaven != nil {
		summary = append(summary, field("Midheaven", c.Angles.Midheaven.Formatted))
	}
	if c.Angles.Status == astrology.AnglesNoLocation {
		summary = append(summary, mutedStyle.Render("no location given, angles and houses skipped"))
	}

	var asp []string
	for _, a := range c.Aspects {
		asp = append(asp, fmt.Sprintf("%s %s %s %s", a.BodyA, a.Name, a.BodyB, mutedStyle.Render(fmt.Sprintf("orb %.2f°", a.Orb))))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(section("Natal chart", summary...)),
		section("Placements", rows...),
		"",
		section(fmt.Sprintf("Aspects (%d)", len(c.Aspects)), asp...),
	)
}

func renderHumanDesign(c *humandesign.Chart) string {
	channels := make([]string, 0, len(c.Graph.ActiveChannels))
	for _, ch := range c.Graph.ActiveChannels {
		channels = append(channels, fmt.Sprintf("%s %s", ch.Key(), mutedStyle.Render(ch.Name)))
	}
	defined := make([]string, 0, len(c.Graph.DefinedCenters))
	for _, ctr := range c.Graph.DefinedCenters {
		defined = append(defined, ctr.Name())
	}

	summary := []string{
		field("Type", c.Type.Name),
		field("Strategy", c.Type.Strategy),
		field("Authority", c.Authority.Name),
		field("Profile", fmt.Sprintf("%s %s", c.Profile.Key(), c.Profile.Name)),
		field("Definition", c.Definition),
		field("Cross", c.Cross.Label),
		field("Design moment", moment(c.DesignMoment.Moment)),
	}
	if !c.DesignMoment.Converged {
		summary = append(summary, mutedStyle.Render(fmt.Sprintf("design moment is a best effort, residual %.4f°", c.DesignMoment.Residual)))
	}

	var acts []string
	for i, p := range c.Personality {
		d := c.Design[i]
		acts = append(acts, fmt.Sprintf("%-11s %5s  %5s", p.Body,
			fmt.Sprintf("%d.%d", p.Gate, p.Line), fmt.Sprintf("%d.%d", d.Gate, d.Line)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(section("Human Design", summary...)),
		section("Activations", append([]string{mutedStyle.Render(fmt.Sprintf("%-11s %5s  %5s", "", "pers", "des"))}, acts...)...),
		"",
		section("Defined centers", strings.Join(defined, ", ")),
		"",
		section(fmt.Sprintf("Channels (%d)", len(channels)), channels...),
	)
}

func renderGeneKeys(p *genekeys.Profile) string {
	var rows []string
	seq := ""
	for _, s := range p.Spheres {
		if s.Sequence != seq {
			if seq != "" {
				rows = append(rows, "")
			}
			seq = s.Sequence
			rows = append(rows, titleStyle.Render(seq+" Sequence"))
		}
		rows = append(rows, fmt.Sprintf("%-12s %2d.%d  %s", s.Name, s.Key.Number, s.Line,
			mutedStyle.Render(fmt.Sprintf("%s / %s / %s", s.Key.Shadow, s.Key.Gift, s.Key.Siddhi))))
	}
	return strings.Join(rows, "\n")
}

func renderVedic(c *vedic.Chart) string {
	var rows []string
	for _, p := range c.Placements {
		house := ""
		if p.House > 0 {
			house = mutedStyle.Render(fmt.Sprintf("  house %d", p.House))
		}
		rows = append(rows, fmt.Sprintf("%-8s %-22s %s pada %d%s", p.Graha, p.Formatted, p.Nakshatra.Name, p.Nakshatra.Pada, house))
	}

	summary := []string{
		field("Ayanamsa", fmt.Sprintf("%.4f°", c.Ayanamsa)),
		field("Moon nakshatra", fmt.Sprintf("%s pada %d, lord %s", c.MoonNakshatra.Name, c.MoonNakshatra.Pada, c.MoonNakshatra.Lord)),
	}
	if c.Lagna != nil {
		summary = append(summary, field("Lagna", c.Lagna.Formatted))
	}
	if maha, antar, ok := c.DashaAt(time.Now()); ok {
		summary = append(summary, field("Current dasha", fmt.Sprintf("%s / %s until %s", maha.Lord, antar.Lord, humanize.Time(antar.End))))
	}

	var dashas []string
	for _, d := range c.Dashas {
		dashas = append(dashas, fmt.Sprintf("%-8s %s to %s", d.Lord, d.Start.Format("2006-01-02"), d.End.Format("2006-01-02")))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(section("Vedic chart", summary...)),
		section("Grahas", rows...),
		"",
		section("Vimshottari mahadashas", dashas...),
	)
}

func scoreLine(score float64, verdict string) string {
	return titleStyle.Render(fmt.Sprintf("%.0f / 100", score)) + "  " + verdict
}

func renderAstrologyCompare(r *compat.AstrologyResult) string {
	lines := []string{scoreLine(r.Score, r.Verdict), ""}
	for _, k := range r.KeyConnections {
		if k.Aspect == nil {
			lines = append(lines, fmt.Sprintf("%-11s %s", k.Name, mutedStyle.Render("no aspect")))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-11s %s %s %s (orb %.2f°)", k.Name, k.Aspect.BodyA, k.Aspect.Name, k.Aspect.BodyB, k.Aspect.Orb))
	}
	lines = append(lines, "",
		field("Element harmony", fmt.Sprintf("%.2f", r.ElementHarmony)),
		field("Aspects", fmt.Sprintf("%d, mean harmony %.2f", len(r.Aspects), r.MeanHarmony)),
	)
	return section("Synastry", lines...)
}

func renderHumanDesignCompare(r *compat.HumanDesignResult) string {
	list := func(label string, n int, items []string) string {
		if n == 0 {
			return field(label, mutedStyle.Render("none"))
		}
		return field(label, strings.Join(items, ", "))
	}
	var em, comp, dom, cpr []string
	for _, e := range r.Electromagnetic {
		em = append(em, e.Channel)
	}
	for _, l := range r.Companionship {
		comp = append(comp, l.Channel)
	}
	for _, l := range r.Dominance {
		dom = append(dom, fmt.Sprintf("%s (%s)", l.Channel, l.Holder))
	}
	for _, l := range r.Compromise {
		cpr = append(cpr, fmt.Sprintf("%s (%s)", l.Channel, l.Holder))
	}
	return section("Connection chart",
		scoreLine(r.Score, r.Verdict),
		"",
		field("Types", r.TypePair),
		field("Composite", fmt.Sprintf("%s, theme %s %s", r.Composite.Type, r.ConnectionTheme, r.ThemeName)),
		list("Electromagnetic", len(em), em),
		list("Companionship", len(comp), comp),
		list("Dominance", len(dom), dom),
		list("Compromise", len(cpr), cpr),
	)
}

func renderGeneKeysCompare(r *compat.GeneKeysResult) string {
	var lines []string
	lines = append(lines, scoreLine(r.Score, r.Verdict), "")
	for _, s := range r.Shared {
		lines = append(lines, fmt.Sprintf("Key %-2d %s  %s", s.Key, s.Gift,
			mutedStyle.Render(strings.Join(s.ASpheres, "/")+" | "+strings.Join(s.BSpheres, "/"))))
	}
	for _, p := range r.Partners {
		lines = append(lines, fmt.Sprintf("Partners %d and %d", p.AKey, p.BKey))
	}
	for _, m := range r.SphereMatches {
		lines = append(lines, fmt.Sprintf("%s holds key %d in both", m.Sphere, m.Key))
	}
	return section("Gene Keys", lines...)
}

func renderVedicCompare(r *compat.VedicResult) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%g / %g", r.Total, r.Max)) + fmt.Sprintf("  %.0f%% %s", r.Percentage, r.Verdict),
		"",
	}
	for _, k := range r.Kootas {
		lines = append(lines, fmt.Sprintf("%-13s %4.1f / %-2g %s", k.Name, k.Points, k.Max, mutedStyle.Render(k.Detail)))
	}
	return section("Ashtakoota", lines...)
}
