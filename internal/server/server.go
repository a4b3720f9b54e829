package server

import (
	"bufio"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/rs/zerolog"

	"github.com/ironsheep/display-image-tools/internal/config"
	"github.com/ironsheep/display-image-tools/internal/imaging"
	"github.com/ironsheep/display-image-tools/internal/screenshot"
)

// Version is reported in the initialize response.
var Version = "dev"

// Server handles MCP protocol communication
type Server struct {
	fetcher           *imaging.Fetcher
	enhancer          *imaging.Enhancer
	renderer          *screenshot.Renderer
	screenshotTimeout time.Duration
	logger            zerolog.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server wired from cfg. It fails only if the configured
// protected palette is invalid.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	return &Server{
		fetcher: imaging.NewFetcher(
			&http.Client{Timeout: cfg.Fetch.Timeout},
			logger.With().Str("component", "fetcher").Logger(),
			imaging.WithUserAgent(cfg.Fetch.UserAgent),
		),
		enhancer: imaging.NewEnhancer(palette),
		renderer: screenshot.New(
			logger.With().Str("component", "screenshot").Logger(),
			screenshot.WithBrowser(cfg.Screenshot.Browser),
			screenshot.WithKillAfter(cfg.Screenshot.KillAfter),
		),
		screenshotTimeout: cfg.ScreenshotTimeout(),
		logger:            logger,
	}, nil
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited requests from r and writes responses to w
// until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// HTML payloads for image_screenshot can be large
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Error().Err(err).Msg("failed to parse request")
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error().Err(err).Msg("failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scanner error")
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: "Method not found: " + req.Method,
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "display-image-tools",
				"version": Version,
			},
		},
	}
}
