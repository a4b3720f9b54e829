package imaging

import (
	"crypto/sha256"
	"encoding/hex"
	"image"

	"github.com/disintegration/imaging"
)

// ComputeImageHash returns the lowercase hex SHA-256 of img's RGB pixels.
//
// The image is normalized to non-premultiplied RGB and serialized row-major
// as R,G,B bytes with alpha dropped. The hash depends only on pixel content:
// the same visible colors hash identically whatever the source format or
// color model.
func ComputeImageHash(img image.Image) string {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	h256 := sha256.New()
	row := make([]byte, 0, w*3)
	for y := 0; y < h; y++ {
		row = row[:0]
		off := y * src.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			row = append(row, src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		}
		h256.Write(row)
	}
	return hex.EncodeToString(h256.Sum(nil))
}
