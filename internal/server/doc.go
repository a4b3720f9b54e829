// Package server implements the MCP (Model Context Protocol) server that
// exposes the display image pipeline as tools.
//
// This package provides a JSON-RPC 2.0 server that lets MCP clients fetch,
// render, reshape, enhance and fingerprint images for a display panel.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Acquisition:
//   - image_fetch: Download an image over HTTP
//   - image_screenshot: Render HTML, a file or a URL with a headless browser
//
// Geometry:
//   - image_orient: Rotate for a horizontal or vertical panel
//   - image_resize: Aspect-preserving crop and resize
//
// Enhancement:
//   - image_enhance: Brightness, contrast, saturation, sharpness
//
// Fingerprinting:
//   - image_hash: SHA-256 of the RGB pixels
//
// # Results
//
// Image-producing tools either write to output_path or return the image as a
// base64 PNG, always alongside its dimensions and hash. image_fetch and
// image_screenshot report found=false instead of failing when no image could
// be acquired.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
