package model

import "testing"

func TestDetectOffcutsFiltersSmallRemnants(t *testing.T) {
	sr := SheetResult{
		Sheet: Sheet{Label: "Sheet1", Width: 2440, Height: 1220},
		FreeRects: []Rect{
			{X: 1000, Y: 0, Width: 1440, Height: 1220}, // large right strip
			{X: 0, Y: 600, Width: 1000, Height: 30},    // too narrow
			{X: 0, Y: 630, Width: 90, Height: 100},     // below min area
			{X: 0, Y: 730, Width: 500, Height: 490},
		},
	}

	offcuts := DetectOffcuts(sr, MinOffcutDimension, MinOffcutArea)
	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(offcuts))
	}
	if offcuts[0].Width != 1440 || offcuts[0].Height != 1220 {
		t.Errorf("expected largest offcut first, got %.0fx%.0f", offcuts[0].Width, offcuts[0].Height)
	}
	if offcuts[1].X != 0 || offcuts[1].Y != 730 {
		t.Errorf("unexpected second offcut at (%.0f,%.0f)", offcuts[1].X, offcuts[1].Y)
	}
	for _, o := range offcuts {
		if o.SheetLabel != "Sheet1" {
			t.Errorf("expected sheet label to be carried, got %q", o.SheetLabel)
		}
		if len(o.ID) != 8 {
			t.Errorf("expected 8 char ID, got %q", o.ID)
		}
	}
}

func TestDetectOffcutsNone(t *testing.T) {
	sr := SheetResult{Sheet: Sheet{Width: 100, Height: 100}}
	if got := DetectOffcuts(sr, MinOffcutDimension, MinOffcutArea); len(got) != 0 {
		t.Errorf("expected no offcuts without free rectangles, got %d", len(got))
	}
}

func TestDetectOffcutsWithSettings(t *testing.T) {
	sr := SheetResult{
		FreeRects: []Rect{{Width: 40, Height: 40}},
	}
	s := DefaultSettings()
	if got := DetectOffcutsWithSettings(sr, s); len(got) != 0 {
		t.Errorf("40x40 is below the default thresholds, got %d offcuts", len(got))
	}

	s.MinOffcutDimension = 10
	s.MinOffcutArea = 100
	if got := DetectOffcutsWithSettings(sr, s); len(got) != 1 {
		t.Errorf("expected 1 offcut with relaxed thresholds, got %d", len(got))
	}
}

func TestOffcutToSheet(t *testing.T) {
	o := Offcut{SheetLabel: "A", Width: 300, Height: 200}
	s := o.ToSheet()
	if s.Label != "Offcut A" || s.Width != 300 || s.Height != 200 || s.Margin != 0 {
		t.Errorf("unexpected sheet %+v", s)
	}
}

func TestTotalOffcutArea(t *testing.T) {
	offcuts := []Offcut{{Width: 100, Height: 100}, {Width: 50, Height: 200}}
	if got := TotalOffcutArea(offcuts); got != 20000 {
		t.Errorf("expected 20000, got %f", got)
	}
}
