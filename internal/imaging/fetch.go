package imaging

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultFetchTimeout bounds a single GET when no client is supplied.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher downloads and decodes remote images.
type Fetcher struct {
	client    *http.Client
	logger    zerolog.Logger
	userAgent string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a Fetcher. A nil client is replaced by one with
// DefaultFetchTimeout.
func NewFetcher(client *http.Client, logger zerolog.Logger, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	f := &Fetcher{
		client: client,
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetImage fetches url and decodes the response body.
//
// Returns:
//   - image.Image, nil: status was 2xx or 304 and the body decoded.
//   - nil, nil: any other status. The status and URL are logged; callers treat
//     this as a normal "no image" outcome.
//   - nil, error: the request failed at the network level or the body is not a
//     decodable image.
//
// The body's content type is not checked before decoding.
func (f *Fetcher) GetImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create request for %s", url)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot fetch %s", url)
	}
	defer resp.Body.Close()

	if !isFetchSuccess(resp.StatusCode) {
		f.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("url", url).
			Msg("received non-success response")
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read body of %s", url)
	}

	f.logger.Debug().
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Str("mime", mimetype.Detect(body).String()).
		Str("size", humanize.Bytes(uint64(len(body)))).
		Msg("fetched image")

	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode image from %s", url)
	}
	return img, nil
}

// isFetchSuccess accepts any 2xx status and 304 Not Modified.
func isFetchSuccess(status int) bool {
	return (status >= 200 && status < 300) || status == http.StatusNotModified
}

var defaultFetcher = NewFetcher(nil, zerolog.Nop())

// GetImage fetches url with a default Fetcher that does not log.
func GetImage(ctx context.Context, url string) (image.Image, error) {
	return defaultFetcher.GetImage(ctx, url)
}
