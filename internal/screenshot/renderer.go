package screenshot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/rs/zerolog"

	"github.com/ironsheep/display-image-tools/internal/imaging"
)

// DefaultBrowser is the executable used when no browser is configured.
const DefaultBrowser = "chromium-headless-shell"

// outputName is the screenshot file inside each capture's temp directory.
const outputName = "screenshot.png"

// Renderer captures screenshots with an external headless browser.
type Renderer struct {
	browser   string
	killAfter time.Duration
	logger    zerolog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBrowser sets the browser executable name or path. Empty keeps the
// default.
func WithBrowser(browser string) Option {
	return func(r *Renderer) {
		if browser != "" {
			r.browser = browser
		}
	}
}

// WithKillAfter kills the browser process if it runs longer than d.
// Zero disables the limit.
func WithKillAfter(d time.Duration) Option {
	return func(r *Renderer) {
		r.killAfter = d
	}
}

// New creates a Renderer.
func New(logger zerolog.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		browser: DefaultBrowser,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Browser returns the configured executable.
func (r *Renderer) Browser() string {
	return r.browser
}

// TakeScreenshotHTML renders an HTML document at the given window size.
//
// The HTML is written to a temporary .html file which is always removed
// before returning. Returns nil on any failure.
func (r *Renderer) TakeScreenshotHTML(ctx context.Context, html string, dims imaging.Dimensions, timeout time.Duration) image.Image {
	path, err := writeTempHTML(html)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to take screenshot")
		return nil
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			r.logger.Warn().Err(err).Str("path", path).Msg("cannot remove temporary html file")
		}
	}()

	return r.TakeScreenshot(ctx, path, dims, timeout)
}

// TakeScreenshot renders target, a file path or URL, at the given window
// size.
//
// A positive timeout is passed to the browser as --timeout in milliseconds.
// Returns nil when the browser exits non-zero, produces no output, or any
// other step fails; the cause is logged.
func (r *Renderer) TakeScreenshot(ctx context.Context, target string, dims imaging.Dimensions, timeout time.Duration) image.Image {
	img, err := r.capture(ctx, target, dims, timeout)
	if err != nil {
		r.logger.Error().Err(err).Str("target", target).Msg("failed to take screenshot")
		return nil
	}
	return img
}

// capture runs the browser and decodes its output. Every failure is returned
// as an error for TakeScreenshot to log.
func (r *Renderer) capture(ctx context.Context, target string, dims imaging.Dimensions, timeout time.Duration) (image.Image, error) {
	if !dims.Valid() {
		return nil, errors.Errorf("invalid window size %s", dims)
	}

	dir, err := os.MkdirTemp("", "screenshot-*")
	if err != nil {
		return nil, errors.Wrap(err, "cannot create temporary directory")
	}
	defer os.RemoveAll(dir)
	outPath := filepath.Join(dir, outputName)

	if r.killAfter > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.killAfter)
		defer cancel()
	}

	args := BuildArgs(target, outPath, dims, timeout)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.browser, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug().Str("browser", r.browser).Strs("args", args).Msg("running headless browser")

	runErr := cmd.Run()
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return nil, errors.Wrapf(runErr, "cannot run %s", r.browser)
	}
	if _, statErr := os.Stat(outPath); runErr != nil || statErr != nil {
		r.logger.Error().
			Str("target", target).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("headless browser produced no screenshot")
		if runErr != nil {
			return nil, errors.Wrapf(runErr, "%s failed", r.browser)
		}
		return nil, errors.Errorf("%s exited without writing %s", r.browser, outputName)
	}

	img, err := imaging.LoadImage(outPath)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// BuildArgs returns the browser arguments for one capture.
func BuildArgs(target, outPath string, dims imaging.Dimensions, timeout time.Duration) []string {
	args := []string{
		target,
		"--headless",
		"--screenshot=" + outPath,
		fmt.Sprintf("--window-size=%d,%d", dims.Width, dims.Height),
		"--no-sandbox",
		"--disable-gpu",
		"--disable-software-rasterizer",
		"--disable-dev-shm-usage",
		"--hide-scrollbars",
	}
	if timeout > 0 {
		args = append(args, fmt.Sprintf("--timeout=%d", timeout.Milliseconds()))
	}
	return args
}

func writeTempHTML(html string) (string, error) {
	f, err := os.CreateTemp("", "screenshot-*.html")
	if err != nil {
		return "", errors.Wrap(err, "cannot create temporary html file")
	}
	if _, err := f.WriteString(html); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", errors.Wrap(err, "cannot write temporary html file")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "cannot close temporary html file")
	}
	return f.Name(), nil
}
