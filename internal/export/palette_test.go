package export

import (
	"image/color"
	"testing"
)

func TestPaletteDistinctColours(t *testing.T) {
	keys := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	p := NewPalette(keys)

	seen := make(map[color.RGBA]string)
	for _, k := range keys {
		c := p.RGBA(k)
		if other, dup := seen[c]; dup {
			t.Errorf("%s and %s share colour %v", k, other, c)
		}
		seen[c] = k
	}
}

func TestPaletteStable(t *testing.T) {
	a := NewPalette([]string{"x", "y"})
	b := NewPalette([]string{"x", "y", "x"})
	if a.RGBA("y") != b.RGBA("y") {
		t.Error("duplicate keys must not shift colours")
	}
}

func TestPaletteUnknownKeyIsGrey(t *testing.T) {
	p := NewPalette(nil)
	if c := p.RGBA("nope"); c.R != 160 || c.G != 160 || c.B != 160 {
		t.Errorf("expected grey, got %v", c)
	}
	if h := p.Hex("nope"); h != "#a0a0a0" {
		t.Errorf("expected #a0a0a0, got %s", h)
	}
}
