package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/SheetYield/internal/model"
)

// Generator produces a cutting program for the guillotine cut sequence of a
// packed sheet. Each cut runs edge to edge across the piece it divides.
type Generator struct {
	Settings model.PlanSettings
	profile  model.GCodeProfile
}

func New(settings model.PlanSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.GCodeProfile),
	}
}

// WithProfile replaces the controller profile chosen by name, for example
// with a custom profile loaded from disk.
func (g *Generator) WithProfile(p model.GCodeProfile) *Generator {
	g.profile = p
	return g
}

// Profile returns the controller profile the generator writes for.
func (g *Generator) Profile() model.GCodeProfile {
	return g.profile
}

// GenerateSheet produces the program that cuts one sheet. Every sheet of a
// production plan is cut the same way, so one program serves the whole run.
func (g *Generator) GenerateSheet(sr model.SheetResult) string {
	var b strings.Builder

	g.writeHeader(&b, sr)
	for i, c := range sr.Cuts {
		g.writeCut(&b, c, i+1)
	}
	g.writeFooter(&b)

	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, sr model.SheetResult) {
	p := g.profile
	label := sr.Sheet.Label
	if label == "" {
		label = sr.Sheet.String()
	}

	b.WriteString(g.comment(fmt.Sprintf("SheetYield cutting program (%s)", label)))
	b.WriteString(g.comment(fmt.Sprintf("Sheet: %.1f x %.1f mm, margin %.1f mm",
		sr.Sheet.Width, sr.Sheet.Height, sr.Sheet.Margin)))
	b.WriteString(g.comment(fmt.Sprintf("Figures: %d, Cuts: %d, Efficiency: %.1f%%",
		len(sr.Placements), len(sr.Cuts), sr.Efficiency*100)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min, Plunge: %.0f mm/min",
		g.Settings.FeedRate, g.Settings.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.1fmm in %d passes", g.Settings.CutDepth, g.passes())))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", g.Settings.SpindleSpeed))
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString(g.comment("=== Job complete ==="))
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
	for _, code := range p.EndCode {
		b.WriteString(strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ)) + "\n")
	}
}

func (g *Generator) writeCut(b *strings.Builder, c model.Cut, num int) {
	p := g.profile
	x1, y1 := c.End()

	b.WriteString(g.comment(fmt.Sprintf("--- Cut %d: %s, length %.1f ---", num, c.Orientation, c.Length)))

	n := g.passes()
	for pass := 1; pass <= n; pass++ {
		depth := math.Min(float64(pass)*g.Settings.PassDepth, g.Settings.CutDepth)
		if n == 1 {
			depth = g.Settings.CutDepth
		}

		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(c.X), g.format(c.Y)))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-depth), g.format(g.Settings.PlungeRate)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(x1), g.format(y1), g.format(g.Settings.FeedRate)))
		b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	}
	b.WriteString("\n")
}

// passes returns the number of depth passes per cut, at least one.
func (g *Generator) passes() int {
	if g.Settings.PassDepth <= 0 || g.Settings.CutDepth <= 0 {
		return 1
	}
	return max(int(math.Ceil(g.Settings.CutDepth/g.Settings.PassDepth-model.Epsilon)), 1)
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
