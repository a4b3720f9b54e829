package server

import (
	"context"
	"encoding/json"
	"image"
	"time"

	"emperror.dev/errors"

	"github.com/ironsheep/display-image-tools/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_fetch", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// AcquireResult is returned by tools whose source may legitimately be absent.
//
// Found is false when the remote server or the headless browser produced no
// image; the embedded ImageResult is then omitted.
type AcquireResult struct {
	Found bool `json:"found"`
	*imaging.ImageResult
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug().Err(err).Str("tool", params.Name).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads or acquires the source image
//  4. Calls the appropriate imaging or screenshot function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Acquisition
	case "image_fetch":
		return s.handleImageFetch(ctx, args)
	case "image_screenshot":
		return s.handleImageScreenshot(ctx, args)

	// Geometry
	case "image_orient":
		return s.handleImageOrient(args)
	case "image_resize":
		return s.handleImageResize(args)

	// Enhancement
	case "image_enhance":
		return s.handleImageEnhance(args)

	// Fingerprinting
	case "image_hash":
		return s.handleImageHash(args)

	default:
		return nil, errors.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// acquired wraps a possibly nil image into an AcquireResult.
func acquired(img image.Image, outputPath string) (*AcquireResult, error) {
	if img == nil {
		return &AcquireResult{Found: false}, nil
	}
	result, err := imaging.NewImageResult(img, outputPath)
	if err != nil {
		return nil, err
	}
	return &AcquireResult{Found: true, ImageResult: result}, nil
}

// === Acquisition Handlers ===

type imageFetchArgs struct {
	URL        string `json:"url"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageFetch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageFetchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.URL == "" {
		return nil, errors.New("url is required")
	}

	img, err := s.fetcher.GetImage(ctx, a.URL)
	if err != nil {
		return nil, err
	}
	return acquired(img, a.OutputPath)
}

type imageScreenshotArgs struct {
	Target     string  `json:"target"`
	HTML       string  `json:"html"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	TimeoutMs  int     `json:"timeout_ms"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageScreenshot(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageScreenshotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Target == "" && a.HTML == "" {
		return nil, errors.New("either target or html is required")
	}

	dims := imaging.Dimensions{Width: int(a.Width), Height: int(a.Height)}
	if !dims.Valid() {
		return nil, errors.Errorf("invalid window size %s", dims)
	}

	timeout := s.screenshotTimeout
	if a.TimeoutMs > 0 {
		timeout = time.Duration(a.TimeoutMs) * time.Millisecond
	}

	var img image.Image
	if a.HTML != "" {
		img = s.renderer.TakeScreenshotHTML(ctx, a.HTML, dims, timeout)
	} else {
		img = s.renderer.TakeScreenshot(ctx, a.Target, dims, timeout)
	}
	return acquired(img, a.OutputPath)
}

// === Geometry Handlers ===

type imageOrientArgs struct {
	Path        string `json:"path"`
	Orientation string `json:"orientation"`
	Inverted    bool   `json:"inverted"`
	OutputPath  string `json:"output_path"`
}

func (s *Server) handleImageOrient(args json.RawMessage) (interface{}, error) {
	var a imageOrientArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.LoadImage(a.Path)
	if err != nil {
		return nil, err
	}

	rotated, err := imaging.ChangeOrientation(img, imaging.Orientation(a.Orientation), a.Inverted)
	if err != nil {
		return nil, err
	}
	return imaging.NewImageResult(rotated, a.OutputPath)
}

type imageResizeArgs struct {
	Path       string  `json:"path"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	KeepWidth  bool    `json:"keep_width"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.LoadImage(a.Path)
	if err != nil {
		return nil, err
	}

	settings := imaging.DefaultImageSettings()
	settings.KeepWidth = a.KeepWidth
	size := imaging.Dimensions{Width: int(a.Width), Height: int(a.Height)}

	resized, err := imaging.ResizeImage(img, size, settings)
	if err != nil {
		return nil, err
	}
	return imaging.NewImageResult(resized, a.OutputPath)
}

// === Enhancement Handlers ===

type imageEnhanceArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageEnhance(args json.RawMessage) (interface{}, error) {
	var a imageEnhanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// Absent factors keep their 1.0 default
	settings := imaging.DefaultImageSettings()
	if err := json.Unmarshal(args, &settings); err != nil {
		return nil, err
	}

	img, err := imaging.LoadImage(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.NewImageResult(s.enhancer.Apply(img, settings), a.OutputPath)
}

// === Fingerprinting Handlers ===

type imageHashArgs struct {
	Path string `json:"path"`
}

// ImageHashResult contains an image fingerprint.
type ImageHashResult struct {
	Hash   string `json:"hash"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageHash(args json.RawMessage) (interface{}, error) {
	var a imageHashArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.LoadImage(a.Path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &ImageHashResult{
		Hash:   imaging.ComputeImageHash(img),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
