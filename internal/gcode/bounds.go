package gcode

import (
	"fmt"

	"github.com/piwi3910/SheetYield/internal/model"
)

// Violation is a cutting move that leaves the sheet.
type Violation struct {
	Line int
	X, Y float64
}

// CheckBounds returns every cutting or plunging move whose end point lies
// outside the sheet. Rapid moves above the material are not checked.
func CheckBounds(moves []Move, sheet model.Sheet) []Violation {
	area := model.Rect{Width: sheet.Width, Height: sheet.Height}
	var out []Violation
	for _, m := range moves {
		if m.Type != MoveFeed && m.Type != MovePlunge {
			continue
		}
		if !area.Contains(model.Rect{X: m.ToX, Y: m.ToY}) {
			out = append(out, Violation{Line: m.Line, X: m.ToX, Y: m.ToY})
		}
	}
	return out
}

// FormatViolations produces human-readable warnings.
func FormatViolations(vs []Violation, sheet model.Sheet) []string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, fmt.Sprintf("line %d: cut reaches (%.1f, %.1f) outside the %s sheet", v.Line, v.X, v.Y, sheet))
	}
	return msgs
}
