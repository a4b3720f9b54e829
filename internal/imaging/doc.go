// Package imaging provides the image acquisition and transformation steps of
// the display pipeline.
//
// This package fetches remote images, rotates them into the panel orientation,
// crops and resizes them to the panel size, applies enhancement passes that
// leave protected palette colors untouched, and fingerprints the result.
// All operations work with standard Go image.Image types and return
// *image.NRGBA. The coordinate system places (0,0) at the top-left corner,
// X increases rightward, and Y increases downward.
//
// # Operations
//
//   - Fetcher.GetImage: HTTP GET and decode
//   - ChangeOrientation: rotate to horizontal/vertical, optionally inverted
//   - ResizeImage: aspect-preserving crop followed by a Lanczos resize
//   - Enhancer.Apply: brightness, contrast, saturation, sharpness
//   - ComputeImageHash: SHA-256 over the RGB pixel buffer
//
// # Color Handling
//
// Enhancement and hashing normalize their input to opaque RGB first. Any alpha
// channel is discarded, so transparent regions take whatever color the source
// stored underneath them.
//
// # Error Handling
//
// Fetching distinguishes between an absent image and a failure:
//   - A non-success HTTP status is logged and yields a nil image and nil error
//   - Network and decode failures are returned as errors
//
// Geometry functions return errors for invalid inputs such as:
//   - Orientations other than horizontal or vertical
//   - Non-positive target dimensions
//   - Empty source images
//
// # Thread Safety
//
// Operations are stateless and can be called concurrently on different images.
// Fetcher and Enhancer values hold only immutable configuration.
package imaging
