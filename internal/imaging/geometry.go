package imaging

import (
	"image"
	"math"

	"emperror.dev/errors"
	"github.com/disintegration/imaging"
)

// Orientation is the physical orientation of the target display.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// ErrInvalidOrientation is returned for orientations other than Horizontal
// and Vertical.
var ErrInvalidOrientation = errors.New("invalid orientation")

// RotationAngle maps an orientation to a counter-clockwise rotation in
// degrees: horizontal is 0, vertical is 90, and inverted adds 180.
func RotationAngle(o Orientation, inverted bool) (int, error) {
	var angle int
	switch o {
	case Horizontal:
		angle = 0
	case Vertical:
		angle = 90
	default:
		return 0, errors.Wrapf(ErrInvalidOrientation, "%q", string(o))
	}

	if inverted {
		angle = (angle + 180) % 360
	}
	return angle, nil
}

// ChangeOrientation rotates img counter-clockwise by RotationAngle(o, inverted).
//
// The canvas grows to fit the rotated content, so a 90 or 270 degree rotation
// swaps width and height and no pixels are cropped. A 0 degree rotation
// returns an unchanged copy.
func ChangeOrientation(img image.Image, o Orientation, inverted bool) (*image.NRGBA, error) {
	angle, err := RotationAngle(o, inverted)
	if err != nil {
		return nil, err
	}

	switch angle {
	case 90:
		return imaging.Rotate90(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate270(img), nil
	default:
		return imaging.Clone(img), nil
	}
}

// CropRect returns the region of a w x h image whose aspect ratio matches
// size, with coordinates relative to the image origin.
//
// If the image is wider than the target, the width is cut to
// round(h * targetRatio) and the full height kept; otherwise the height is cut
// to round(w / targetRatio) and the full width kept. The cut axis is centered
// using integer division unless keepWidth is set, in which case the region
// starts at 0 on that axis.
func CropRect(w, h int, size Dimensions, keepWidth bool) image.Rectangle {
	imgRatio := float64(w) / float64(h)
	desiredRatio := float64(size.Width) / float64(size.Height)

	xOffset, yOffset := 0, 0
	newWidth, newHeight := w, h

	if imgRatio > desiredRatio {
		newWidth = clampSide(int(math.Round(float64(h)*desiredRatio)), w)
		if !keepWidth {
			xOffset = (w - newWidth) / 2
		}
	} else {
		newHeight = clampSide(int(math.Round(float64(w)/desiredRatio)), h)
		if !keepWidth {
			yOffset = (h - newHeight) / 2
		}
	}

	return image.Rect(xOffset, yOffset, xOffset+newWidth, yOffset+newHeight)
}

// clampSide keeps a computed crop side within [1, limit].
func clampSide(v, limit int) int {
	if v < 1 {
		return 1
	}
	if v > limit {
		return limit
	}
	return v
}

// ResizeImage crops img to the aspect ratio of size and resizes the crop to
// exactly size using the Lanczos filter.
//
// Parameters:
//   - img: Source image. Must not be empty.
//   - size: Target dimensions. Both sides must be positive.
//   - settings: Only KeepWidth is consulted; see CropRect.
//
// The returned image always has bounds (0,0)-(size.Width,size.Height).
func ResizeImage(img image.Image, size Dimensions, settings ImageSettings) (*image.NRGBA, error) {
	if !size.Valid() {
		return nil, errors.Errorf("invalid target size %s", size)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.New("cannot resize an empty image")
	}

	rect := CropRect(bounds.Dx(), bounds.Dy(), size, settings.KeepWidth).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)

	return imaging.Resize(cropped, size.Width, size.Height, imaging.Lanczos), nil
}
