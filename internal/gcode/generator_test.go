package gcode

import (
	"strings"
	"testing"

	"github.com/piwi3910/SheetYield/internal/model"
)

// newTestSettings returns settings with predictable output.
func newTestSettings() model.PlanSettings {
	s := model.DefaultSettings()
	s.FeedRate = 1000.0
	s.PlungeRate = 300.0
	s.SpindleSpeed = 12000
	s.SafeZ = 5.0
	s.CutDepth = 6.0
	s.PassDepth = 6.0
	s.GCodeProfile = "Generic"
	return s
}

func newTestSheet() model.SheetResult {
	return model.SheetResult{
		Sheet: model.Sheet{Label: "TestSheet", Width: 100, Height: 100},
		Placements: []model.Placement{
			{Figure: model.Figure{Width: 30, Height: 30}, Key: "30x30"},
		},
		Cuts: []model.Cut{
			{Orientation: model.CutVertical, X: 30, Y: 0, Length: 100},
			{Orientation: model.CutHorizontal, X: 0, Y: 30, Length: 30},
		},
		UsedArea:   900,
		Efficiency: 0.09,
	}
}

func TestGenerateSheet_HeaderAndFooter(t *testing.T) {
	code := New(newTestSettings()).GenerateSheet(newTestSheet())

	for _, want := range []string{
		"; SheetYield cutting program (TestSheet)",
		"; Figures: 1, Cuts: 2, Efficiency: 9.0%",
		"; Profile: Generic",
		"G90\nG21\n",
		"M3 S12000",
		"M5",
		"G0 Z5.000\nG0 X0.000 Y0.000\nM2",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestGenerateSheet_CutSequence(t *testing.T) {
	code := New(newTestSettings()).GenerateSheet(newTestSheet())

	first := strings.Index(code, "Cut 1: vertical")
	second := strings.Index(code, "Cut 2: horizontal")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("cuts missing or out of order:\n%s", code)
	}

	for _, want := range []string{
		"G0 X30.000 Y0.000\nG1 Z-6.000 F300.000\nG1 X30.000 Y100.000 F1000.000\nG0 Z5.000",
		"G0 X0.000 Y30.000\nG1 Z-6.000 F300.000\nG1 X30.000 Y30.000 F1000.000\nG0 Z5.000",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("expected cut block %q", want)
		}
	}
}

func TestGenerateSheet_MultiplePasses(t *testing.T) {
	s := newTestSettings()
	s.CutDepth = 18
	s.PassDepth = 7
	code := New(s).GenerateSheet(newTestSheet())

	for _, depth := range []string{"Z-7.000", "Z-14.000", "Z-18.000"} {
		if strings.Count(code, depth) != 2 {
			t.Errorf("expected %s once per cut, got %d", depth, strings.Count(code, depth))
		}
	}
	if !strings.Contains(code, "in 3 passes") {
		t.Error("header should report 3 passes")
	}
}

func TestGenerateSheet_ZeroPassDepthCutsOnce(t *testing.T) {
	s := newTestSettings()
	s.PassDepth = 0
	code := New(s).GenerateSheet(newTestSheet())
	if strings.Count(code, "Z-6.000") != 2 {
		t.Errorf("expected a single full-depth pass per cut")
	}
}

func TestGenerateSheet_Mach3Comments(t *testing.T) {
	s := newTestSettings()
	s.GCodeProfile = "Mach3"
	g := New(s)
	code := g.GenerateSheet(newTestSheet())

	if g.Profile().Name != "Mach3" {
		t.Fatalf("expected Mach3 profile, got %s", g.Profile().Name)
	}
	if !strings.Contains(code, "( Profile: Mach3)") {
		t.Error("expected parenthesised comments")
	}
	if !strings.Contains(code, "G1 Z-6.0000") {
		t.Error("expected four decimal places")
	}
	if !strings.Contains(code, "M30") {
		t.Error("expected Mach3 end code")
	}
}

func TestGenerateSheet_NoCuts(t *testing.T) {
	sr := model.SheetResult{Sheet: model.NewSheet(100, 100, 0)}
	code := New(newTestSettings()).GenerateSheet(sr)
	if strings.Contains(code, "--- Cut") {
		t.Error("no cut blocks expected for an empty layout")
	}
	if !strings.Contains(code, "(100x100)") {
		t.Error("unlabelled sheet should be named by its size")
	}
}

func TestWithProfileOverridesNamedProfile(t *testing.T) {
	custom := model.GetProfile("Generic")
	custom.Name = "Shop Router"
	custom.CommentPrefix = "("
	custom.CommentSuffix = ")"

	g := New(newTestSettings()).WithProfile(custom)
	if g.Profile().Name != "Shop Router" {
		t.Fatalf("expected custom profile, got %s", g.Profile().Name)
	}

	code := g.GenerateSheet(newTestSheet())
	if !strings.Contains(code, "( Profile: Shop Router)") {
		t.Errorf("expected parenthesis comment with custom profile name:\n%s", code)
	}
}
