package model

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Rect is an axis-aligned rectangle in mm, measured from the sheet's top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the rectangle area in square mm.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Contains reports whether inner lies entirely within r.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X-Epsilon && inner.Y >= r.Y-Epsilon &&
		inner.X+inner.Width <= r.X+r.Width+Epsilon &&
		inner.Y+inner.Height <= r.Y+r.Height+Epsilon
}

// Overlaps reports whether two rectangles share interior area (touching edges do not count).
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width-Epsilon && r.X+r.Width > o.X+Epsilon &&
		r.Y < o.Y+o.Height-Epsilon && r.Y+r.Height > o.Y+Epsilon
}

// Epsilon is the tolerance used when comparing lengths in mm.
const Epsilon = 1e-6

// Sheet is the stock material one packing run works on.
type Sheet struct {
	Label  string  `json:"label,omitempty"`
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
	Margin float64 `json:"margin"` // technological border on all four edges
}

func NewSheet(w, h, margin float64) Sheet {
	return Sheet{Width: w, Height: h, Margin: margin}
}

// Area returns the gross sheet area, margin included.
func (s Sheet) Area() float64 {
	return s.Width * s.Height
}

// Usable returns the cuttable rectangle left after removing the margin.
func (s Sheet) Usable() Rect {
	return Rect{
		X:      s.Margin,
		Y:      s.Margin,
		Width:  s.Width - 2*s.Margin,
		Height: s.Height - 2*s.Margin,
	}
}

func (s Sheet) String() string {
	return formatDim(s.Width) + "x" + formatDim(s.Height)
}

// Figure is a rectangular product type to be cut from the sheet.
type Figure struct {
	ID        string  `json:"id"`
	Label     string  `json:"label,omitempty"`
	Width     float64 `json:"width"`     // mm, without margin
	Height    float64 `json:"height"`    // mm, without margin
	Necessary int     `json:"necessary"` // required quantity
	Rotation  bool    `json:"rotation"`  // may be placed rotated 90°
	Margin    float64 `json:"margin"`    // clearance added on every side when placed
}

func NewFigure(w, h float64, necessary int) Figure {
	return Figure{
		ID:        uuid.New().String()[:8],
		Width:     w,
		Height:    h,
		Necessary: necessary,
	}
}

// Footprint returns the dimensions the figure occupies once its margin is added.
func (f Figure) Footprint() (float64, float64) {
	return f.Width + 2*f.Margin, f.Height + 2*f.Margin
}

// Area returns the footprint area. Margin is consumed material.
func (f Figure) Area() float64 {
	w, h := f.Footprint()
	return w * h
}

// NetArea returns the area of the product itself, without margin.
func (f Figure) NetArea() float64 {
	return f.Width * f.Height
}

// Rotated returns a copy with width and height swapped.
func (f Figure) Rotated() Figure {
	r := f
	r.Width, r.Height = f.Height, f.Width
	return r
}

// Key identifies the figure type in per-type result maps.
func (f Figure) Key() string {
	if f.Label != "" {
		return f.Label
	}
	return formatDim(f.Width) + "x" + formatDim(f.Height)
}

func (f Figure) String() string {
	return formatDim(f.Width) + "x" + formatDim(f.Height)
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Placement records one figure assigned to a free region of the sheet.
type Placement struct {
	Figure  Figure  `json:"figure"`  // oriented as placed
	Key     string  `json:"key"`     // type key of the declared figure
	X       float64 `json:"x"`       // footprint origin, mm from left edge
	Y       float64 `json:"y"`       // footprint origin, mm from top edge
	Node    int     `json:"node"`    // index of the consumed free-rectangle node
	Rotated bool    `json:"rotated"` // placed with width and height swapped
}

// Footprint returns the rectangle occupied on the sheet, margin included.
func (p Placement) Footprint() Rect {
	w, h := p.Figure.Footprint()
	return Rect{X: p.X, Y: p.Y, Width: w, Height: h}
}

// Product returns the rectangle of the figure itself inside its footprint.
func (p Placement) Product() Rect {
	return Rect{
		X:      p.X + p.Figure.Margin,
		Y:      p.Y + p.Figure.Margin,
		Width:  p.Figure.Width,
		Height: p.Figure.Height,
	}
}

// CutOrientation tells which way a guillotine cut runs.
type CutOrientation int

const (
	CutVertical   CutOrientation = iota // runs top to bottom at a fixed X
	CutHorizontal                       // runs left to right at a fixed Y
)

func (o CutOrientation) String() string {
	if o == CutHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText implements encoding.TextMarshaler.
func (o CutOrientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *CutOrientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "vertical":
		*o = CutVertical
	case "horizontal":
		*o = CutHorizontal
	default:
		return fmt.Errorf("unknown cut orientation %q", b)
	}
	return nil
}

// Cut is one edge-to-edge cut across the piece being divided.
type Cut struct {
	Orientation CutOrientation `json:"orientation"`
	X           float64        `json:"x"`
	Y           float64        `json:"y"`
	Length      float64        `json:"length"`
	Node        int            `json:"node"` // node whose area the cut divides
}

// End returns the point where the cut finishes.
func (c Cut) End() (float64, float64) {
	if c.Orientation == CutHorizontal {
		return c.X + c.Length, c.Y
	}
	return c.X, c.Y + c.Length
}

// SheetResult is the outcome of packing one sheet. Every sheet of a production
// run is packed the same way, so one result describes them all.
type SheetResult struct {
	Sheet      Sheet          `json:"sheet"`
	Figures    []Figure       `json:"figures"` // declared types, input order
	Placements []Placement    `json:"placements"`
	Counts     map[string]int `json:"counts"` // per type key, placed on this sheet
	Unmet      map[string]int `json:"unmet"`  // per type key, demand not placed on this sheet
	Cuts       []Cut          `json:"cuts"`
	FreeRects  []Rect         `json:"free_rects"` // free leaves left after packing
	UsedArea   float64        `json:"used_area"`
	Efficiency float64        `json:"efficiency"` // used area / gross sheet area, in [0,1]
}

// TotalArea returns the gross sheet area.
func (sr SheetResult) TotalArea() float64 {
	return sr.Sheet.Area()
}

// WasteArea returns the gross sheet area not covered by footprints.
func (sr SheetResult) WasteArea() float64 {
	return sr.Sheet.Area() - sr.UsedArea
}

// UsableEfficiency returns used area over the usable (margin-free) area.
func (sr SheetResult) UsableEfficiency() float64 {
	ua := sr.Sheet.Usable().Area()
	if ua <= 0 {
		return 0
	}
	return sr.UsedArea / ua
}

// Unplaceable returns the keys of types with demand that did not fit at all, in input order.
func (sr SheetResult) Unplaceable() []string {
	var keys []string
	for _, f := range sr.Figures {
		if f.Necessary > 0 && sr.Counts[f.Key()] == 0 {
			keys = append(keys, f.Key())
		}
	}
	return keys
}
