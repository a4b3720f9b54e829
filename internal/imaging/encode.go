package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"emperror.dev/errors"
)

// ImageResult describes an image produced by a pipeline step.
//
// Exactly one of OutputPath or ImageBase64 is set: either the image was saved
// to disk or it is carried inline as a base64 PNG.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Hash        string `json:"hash"`
	OutputPath  string `json:"output_path,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// NewImageResult hashes img and either saves it to outputPath or, when
// outputPath is empty, encodes it as base64 PNG.
func NewImageResult(img image.Image, outputPath string) (*ImageResult, error) {
	bounds := img.Bounds()
	result := &ImageResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Hash:   ComputeImageHash(img),
	}

	if outputPath != "" {
		if err := SaveImage(img, outputPath); err != nil {
			return nil, err
		}
		result.OutputPath = outputPath
		return result, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	result.MimeType = "image/png"
	return result, nil
}
