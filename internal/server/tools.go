package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var outputPathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Optional file to write the result to (format from extension). When omitted the image is returned as base64 PNG",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Acquisition
		{
			Name:        "image_fetch",
			Description: "Download an image over HTTP. Returns found=false when the server answers with a status other than 2xx or 304.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "URL of the image",
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        "image_screenshot",
			Description: "Render HTML, a local file, or a URL to an image with a headless browser. Returns found=false when the browser fails.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"target": map[string]interface{}{
						"type":        "string",
						"description": "File path or URL to render. Ignored when html is set",
					},
					"html": map[string]interface{}{
						"type":        "string",
						"description": "HTML document to render",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Browser window width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Browser window height in pixels",
					},
					"timeout_ms": map[string]interface{}{
						"type":        "integer",
						"description": "Optional render timeout passed to the browser",
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"width", "height"},
			},
		},

		// Geometry
		{
			Name:        "image_orient",
			Description: "Rotate an image for a horizontal or vertical display, optionally upside down. The canvas expands to fit.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"orientation": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Display orientation",
					},
					"inverted": map[string]interface{}{
						"type":        "boolean",
						"description": "Rotate an extra 180 degrees. Default false",
						"default":     false,
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"path", "orientation"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Crop an image to the target aspect ratio and resize it to exactly width x height.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Target width in pixels (truncated to an integer)",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Target height in pixels (truncated to an integer)",
					},
					"keep_width": map[string]interface{}{
						"type":        "boolean",
						"description": "Anchor the crop at the top-left instead of centering it. Default false",
						"default":     false,
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"path", "width", "height"},
			},
		},

		// Enhancement
		{
			Name:        "image_enhance",
			Description: "Adjust brightness, contrast, saturation and sharpness. Pixels that were exactly one of the protected palette colors keep their value.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"brightness": map[string]interface{}{
						"type":        "number",
						"description": "Brightness factor. Default 1.0 (unchanged)",
						"default":     1.0,
					},
					"contrast": map[string]interface{}{
						"type":        "number",
						"description": "Contrast factor. Default 1.0 (unchanged)",
						"default":     1.0,
					},
					"saturation": map[string]interface{}{
						"type":        "number",
						"description": "Saturation factor. Default 1.0 (unchanged)",
						"default":     1.0,
					},
					"sharpness": map[string]interface{}{
						"type":        "number",
						"description": "Sharpness factor. Default 1.0 (unchanged)",
						"default":     1.0,
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Fingerprinting
		{
			Name:        "image_hash",
			Description: "Compute the SHA-256 of an image's RGB pixels. Identical visible content hashes identically regardless of file format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
