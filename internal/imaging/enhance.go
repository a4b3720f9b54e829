package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// smoothKernel is the 3x3 smoothing filter the sharpness pass blends against.
var smoothKernel = func() convolution.Matrix {
	k := convolution.NewKernel(3, 3)
	copy(k.Matrix, []float64{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	})
	return k.Normalized()
}()

// Enhancer applies the display tuning passes while keeping palette colors
// exact.
type Enhancer struct {
	palette Palette
}

// NewEnhancer creates an Enhancer that restores pixels originally matching p.
func NewEnhancer(p Palette) *Enhancer {
	return &Enhancer{palette: p}
}

// Palette returns the protected palette.
func (e *Enhancer) Palette() Palette {
	return e.palette
}

// Apply runs brightness, contrast, saturation and sharpness, in that order,
// then restores every pixel whose original value is in the palette.
//
// The input is converted to opaque RGB first; transparency is lost. Each pass
// blends the image with a degenerate version of itself:
//
//	out = degenerate + factor*(in - degenerate)
//
// truncated and clamped to 0-255. The degenerate images are black
// (brightness), the rounded mean luma (contrast), the per-pixel luma
// (saturation) and a smoothed copy (sharpness). A factor of 1.0 leaves the
// image unchanged.
func (e *Enhancer) Apply(img image.Image, settings ImageSettings) *image.NRGBA {
	out := toOpaqueRGB(img)
	original := make([]uint8, len(out.Pix))
	copy(original, out.Pix)

	if f := settings.Brightness; f != 1.0 {
		blendUniform(out, 0, f)
	}
	if f := settings.Contrast; f != 1.0 {
		blendUniform(out, meanLuma(out), f)
	}
	if f := settings.Saturation; f != 1.0 {
		blend(out, grayscale(out), f)
	}
	if f := settings.Sharpness; f != 1.0 {
		blend(out, smooth(out), f)
	}

	e.restore(out, original)
	return out
}

// restore copies back original pixels that were palette colors.
func (e *Enhancer) restore(out *image.NRGBA, original []uint8) {
	for i := 0; i+3 < len(original); i += 4 {
		c := RGBColor{R: original[i], G: original[i+1], B: original[i+2]}
		if e.palette.Contains(c) {
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
		}
	}
}

var defaultEnhancer = NewEnhancer(ProtectedPalette())

// ApplyImageEnhancement runs Enhancer.Apply with ProtectedPalette.
func ApplyImageEnhancement(img image.Image, settings ImageSettings) *image.NRGBA {
	return defaultEnhancer.Apply(img, settings)
}

// toOpaqueRGB returns a zero-origin NRGBA copy of img with alpha forced to 255.
func toOpaqueRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}

// luma is the ITU-R 601-2 transform in 16-bit fixed point.
func luma(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 0x8000) >> 16)
}

func meanLuma(img *image.NRGBA) uint8 {
	n := len(img.Pix) / 4
	if n == 0 {
		return 0
	}
	var sum uint64
	for i := 0; i < len(img.Pix); i += 4 {
		sum += uint64(luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2]))
	}
	return uint8(float64(sum)/float64(n) + 0.5)
}

func grayscale(img *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(img.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		l := luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = l, l, l, 255
	}
	return dst
}

// smooth filters img with smoothKernel. Edge rows and columns are copied from
// the input unfiltered.
func smooth(img *image.NRGBA) *image.NRGBA {
	filtered := imaging.Clone(convolution.Convolve(img, smoothKernel, &convolution.Options{
		Bias:      0.5,
		Wrap:      false,
		KeepAlpha: true,
	}))

	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x > 0 && y > 0 && x < w-1 && y < h-1 {
				continue
			}
			i := y*img.Stride + x*4
			j := y*filtered.Stride + x*4
			copy(filtered.Pix[j:j+4], img.Pix[i:i+4])
		}
	}
	return filtered
}

// blend interpolates img toward degenerate in place.
func blend(img, degenerate *image.NRGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = mix(degenerate.Pix[i+c], img.Pix[i+c], factor)
		}
	}
}

// blendUniform interpolates img toward a solid gray level in place.
func blendUniform(img *image.NRGBA, level uint8, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = mix(level, img.Pix[i+c], factor)
		}
	}
}

func mix(degenerate, v uint8, factor float64) uint8 {
	out := float64(degenerate) + factor*(float64(v)-float64(degenerate))
	switch {
	case out <= 0:
		return 0
	case out >= 255:
		return 255
	default:
		return uint8(out)
	}
}
