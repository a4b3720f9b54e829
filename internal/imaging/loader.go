package imaging

import (
	"image"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/disintegration/imaging"
)

// LoadImage opens and decodes an image file.
//
// Supported formats are PNG, JPEG, GIF, WebP, BMP and TIFF. Nothing is cached;
// every call reads the file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %s", path)
	}
	return img, nil
}

// SaveImage writes img to path. The format follows the file extension
// (".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff").
func SaveImage(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "cannot create directory %s", dir)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "failed to save image %s", path)
	}
	return nil
}
