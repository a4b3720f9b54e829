package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a simple test image file and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImage(t *testing.T) {
	path := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 80), img.Bounds())
	assert.Equal(t, RGBColor{255, 0, 0}, rgbAt(img, 50, 40))
}

func TestLoadImage_NonExistent(t *testing.T) {
	_, err := LoadImage("/nonexistent/path/to/image.png")
	assert.Error(t, err)
}

func TestLoadImage_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := LoadImage(path)
	assert.Error(t, err)
}

func TestSaveImage_Formats(t *testing.T) {
	img := createPatternImage(20, 10)
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg", "out.gif", "out.bmp", "out.tiff", "nested/dir/out.png"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveImage(img, path))

			loaded, err := LoadImage(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 20, 10), loaded.Bounds())
		})
	}
}

func TestSaveImage_UnknownExtension(t *testing.T) {
	err := SaveImage(createPatternImage(4, 4), filepath.Join(t.TempDir(), "out.xyz"))
	assert.Error(t, err)
}

func TestSaveImage_PNGIsLossless(t *testing.T) {
	img := createPatternImage(16, 16)
	path := filepath.Join(t.TempDir(), "lossless.png")
	require.NoError(t, SaveImage(img, path))

	loaded, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, ComputeImageHash(img), ComputeImageHash(loaded))
}

func TestNewImageResult_Inline(t *testing.T) {
	img := createPatternImage(30, 20)

	result, err := NewImageResult(img, "")
	require.NoError(t, err)

	assert.Equal(t, 30, result.Width)
	assert.Equal(t, 20, result.Height)
	assert.Equal(t, ComputeImageHash(img), result.Hash)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Empty(t, result.OutputPath)

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	require.NoError(t, err)
	roundTrip, err := png.Decode(bytes.NewReader(decoded))
	require.NoError(t, err)
	assert.Equal(t, result.Hash, ComputeImageHash(roundTrip))
}

func TestNewImageResult_OutputPath(t *testing.T) {
	img := createPatternImage(30, 20)
	path := filepath.Join(t.TempDir(), "result.png")

	result, err := NewImageResult(img, path)
	require.NoError(t, err)

	assert.Equal(t, path, result.OutputPath)
	assert.Empty(t, result.ImageBase64)
	assert.Empty(t, result.MimeType)
	assert.FileExists(t, path)
}
