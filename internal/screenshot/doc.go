// Package screenshot rasterizes HTML pages, local files and URLs by running an
// external headless browser.
//
// The browser is invoked once per capture with a fixed flag set:
//
//	<browser> <target> --headless --screenshot=<out.png> --window-size=<w>,<h>
//	    --no-sandbox --disable-gpu --disable-software-rasterizer
//	    --disable-dev-shm-usage --hide-scrollbars [--timeout=<ms>]
//
// The default executable is chromium-headless-shell; use WithBrowser to point
// at another binary.
//
// # Failure Handling
//
// Unlike the imaging package, this package never returns errors. A non-zero
// exit, a missing output file, or any failure while preparing or decoding is
// logged and reported as a nil image. Callers only need a nil check.
//
// # Temporary Files
//
// Each capture writes into its own temporary directory and each HTML render
// into its own temporary file. Both are removed before the call returns,
// whether or not the capture succeeded.
//
// # Timeouts
//
// The per-call timeout is forwarded to the browser as --timeout and is only
// as reliable as the browser's own handling of it. WithKillAfter adds a hard
// limit after which the process is killed.
package screenshot
