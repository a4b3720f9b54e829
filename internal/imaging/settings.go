package imaging

import "fmt"

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// ImageSettings holds the per-display tuning applied during resize and
// enhancement.
//
// Each factor is multiplicative: 1.0 leaves the image unchanged, values below
// 1.0 reduce the property and values above 1.0 amplify it. Decode JSON into
// the result of DefaultImageSettings so absent keys keep their defaults.
type ImageSettings struct {
	// Brightness scales every channel toward or away from black.
	Brightness float64 `json:"brightness"`

	// Contrast scales every channel toward or away from the mean luma.
	Contrast float64 `json:"contrast"`

	// Saturation scales every pixel toward or away from its own luma.
	Saturation float64 `json:"saturation"`

	// Sharpness scales every pixel toward or away from a smoothed copy.
	Sharpness float64 `json:"sharpness"`

	// KeepWidth anchors the resize crop at the top-left edge instead of
	// centering it.
	KeepWidth bool `json:"keep-width"`
}

// DefaultImageSettings returns identity factors with KeepWidth disabled.
func DefaultImageSettings() ImageSettings {
	return ImageSettings{
		Brightness: 1.0,
		Contrast:   1.0,
		Saturation: 1.0,
		Sharpness:  1.0,
	}
}
