package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// rgbAt returns the 8-bit RGB components at (x, y)
func rgbAt(img image.Image, x, y int) RGBColor {
	r, g, b, _ := img.At(x, y).RGBA()
	return RGBColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

func TestProtectedPalette(t *testing.T) {
	p := ProtectedPalette()
	require.Equal(t, 6, p.Len())

	for _, c := range []RGBColor{
		{0, 0, 0},
		{255, 255, 255},
		{255, 255, 0},
		{255, 0, 0},
		{0, 0, 255},
		{0, 255, 0},
	} {
		assert.True(t, p.Contains(c), "palette should contain %s", c.Hex())
	}

	for _, c := range []RGBColor{
		{1, 0, 0},
		{254, 255, 255},
		{0, 255, 255},
		{255, 0, 255},
		{128, 128, 128},
	} {
		assert.False(t, p.Contains(c), "palette should not contain %s", c.Hex())
	}
}

func TestNewPalette(t *testing.T) {
	p, err := NewPalette("#808080", "#f00", "#FF0000")
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len(), "duplicates should collapse")
	assert.True(t, p.Contains(RGBColor{128, 128, 128}))
	assert.True(t, p.Contains(RGBColor{255, 0, 0}))
	assert.Equal(t, []RGBColor{{128, 128, 128}, {255, 0, 0}}, p.Colors())
}

func TestNewPalette_Invalid(t *testing.T) {
	invalid := []string{"", "red", "#GG0000", "FF0000", "#FF00"}

	for _, h := range invalid {
		t.Run(h, func(t *testing.T) {
			_, err := NewPalette(h)
			assert.Error(t, err)
		})
	}
}

func TestRGBColor_Hex(t *testing.T) {
	assert.Equal(t, "#FF8040", RGBColor{255, 128, 64}.Hex())
	assert.Equal(t, "#000000", RGBColor{}.Hex())
}
