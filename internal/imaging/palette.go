package imaging

import (
	"fmt"
	"sort"

	"emperror.dev/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color as "#RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// DefaultProtectedColors are the panel's native inks: black, white, yellow,
// red, blue and green.
var DefaultProtectedColors = []string{
	"#000000",
	"#FFFFFF",
	"#FFFF00",
	"#FF0000",
	"#0000FF",
	"#00FF00",
}

// Palette is an immutable set of exact RGB values.
//
// The Enhancer restores every pixel whose original value is in its palette,
// so colors the display can reproduce exactly are never shifted by the
// enhancement passes.
type Palette struct {
	colors map[RGBColor]struct{}
}

// NewPalette builds a palette from "#RRGGBB" strings.
//
// Parsing uses go-colorful, so the short "#RGB" form is accepted too.
// Duplicates collapse into a single entry.
func NewPalette(hexColors ...string) (Palette, error) {
	p := Palette{colors: make(map[RGBColor]struct{}, len(hexColors))}
	for _, h := range hexColors {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, errors.Wrapf(err, "invalid palette color %q", h)
		}
		r, g, b := c.RGB255()
		p.colors[RGBColor{R: r, G: g, B: b}] = struct{}{}
	}
	return p, nil
}

// ProtectedPalette returns the palette built from DefaultProtectedColors.
func ProtectedPalette() Palette {
	p, err := NewPalette(DefaultProtectedColors...)
	if err != nil {
		panic(err)
	}
	return p
}

// Contains reports whether c is exactly one of the palette colors.
func (p Palette) Contains(c RGBColor) bool {
	_, ok := p.colors[c]
	return ok
}

// Len returns the number of distinct colors.
func (p Palette) Len() int {
	return len(p.colors)
}

// Colors returns the palette sorted by hex value.
func (p Palette) Colors() []RGBColor {
	colors := make([]RGBColor, 0, len(p.colors))
	for c := range p.colors {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		return colors[i].Hex() < colors[j].Hex()
	})
	return colors
}
