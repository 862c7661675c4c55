package export

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads successive hues so neighbouring figure types differ.
const goldenAngle = 137.50776405

// typeColor returns the fill colour of the i-th figure type.
func typeColor(i int) colorful.Color {
	hue := math.Mod(float64(i)*goldenAngle+95, 360)
	sat := 0.55 + 0.15*float64(i%2)
	val := 0.92 - 0.12*float64((i/2)%2)
	return colorful.Hsv(hue, sat, val)
}

// Palette assigns a stable colour to every figure type key, in the order given.
type Palette struct {
	index map[string]int
}

func NewPalette(keys []string) Palette {
	p := Palette{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		if _, ok := p.index[k]; !ok {
			p.index[k] = len(p.index)
		}
	}
	return p
}

// RGBA returns the colour for a key. Unknown keys get a neutral grey.
func (p Palette) RGBA(key string) color.RGBA {
	i, ok := p.index[key]
	if !ok {
		return color.RGBA{R: 160, G: 160, B: 160, A: 255}
	}
	r, g, b := typeColor(i).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex returns the colour for a key as #rrggbb.
func (p Palette) Hex(key string) string {
	c := p.RGBA(key)
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
