package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/dominant-color-mcp/internal/hover"
	"github.com/ironsheep/dominant-color-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_extract_dominant").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.config.Debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Extraction
	case "color_extract_dominant":
		return s.handleExtractDominant(args)
	case "color_sample_preview":
		return s.handleSamplePreview(args)

	// Cache Control
	case "color_cache_size":
		return s.handleCacheSize()
	case "color_cache_clear":
		return s.handleCacheClear()

	// Color Helpers
	case "color_brightness":
		return s.handleBrightness(args)

	// Hover Card
	case "hover_card_style":
		return s.handleHoverCardStyle(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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

var errMissingSrc = errors.New("src is required")

// === Extraction Handlers ===

type srcArgs struct {
	Src string `json:"src"`
}

// ExtractResult is the result of color_extract_dominant.
type ExtractResult struct {
	Src string `json:"src"`
	imaging.ColorResult
	CacheSize int `json:"cache_size"`
}

func (s *Server) handleExtractDominant(args json.RawMessage) (interface{}, error) {
	var a srcArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Src == "" {
		return nil, errMissingSrc
	}

	color, err := s.extractor.Extract(context.Background(), a.Src)
	if err != nil {
		return nil, err
	}

	return &ExtractResult{
		Src:         a.Src,
		ColorResult: imaging.Describe(color),
		CacheSize:   s.extractor.CacheSize(),
	}, nil
}

type samplePreviewArgs struct {
	Src          string `json:"src"`
	OutlineColor string `json:"outline_color"`
}

func (s *Server) handleSamplePreview(args json.RawMessage) (interface{}, error) {
	var a samplePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Src == "" {
		return nil, errMissingSrc
	}
	if a.OutlineColor == "" {
		a.OutlineColor = imaging.DefaultOutlineColor
	}

	return s.extractor.Preview(context.Background(), a.Src, a.OutlineColor)
}

// === Cache Control Handlers ===

// CacheResult reports the cache size after a cache tool runs.
type CacheResult struct {
	Cleared bool `json:"cleared,omitempty"`
	Size    int  `json:"size"`
}

func (s *Server) handleCacheSize() (interface{}, error) {
	return &CacheResult{Size: s.extractor.CacheSize()}, nil
}

func (s *Server) handleCacheClear() (interface{}, error) {
	s.extractor.ClearCache()
	return &CacheResult{Cleared: true, Size: s.extractor.CacheSize()}, nil
}

// === Color Helper Handlers ===

type brightnessArgs struct {
	R *int `json:"r"`
	G *int `json:"g"`
	B *int `json:"b"`
}

// BrightnessResult is the result of color_brightness.
type BrightnessResult struct {
	CSS        string  `json:"css"`
	Hex        string  `json:"hex"`
	Brightness float64 `json:"brightness"`
}

func (s *Server) handleBrightness(args json.RawMessage) (interface{}, error) {
	var a brightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	channels := []struct {
		name string
		v    *int
	}{{"r", a.R}, {"g", a.G}, {"b", a.B}}
	for _, ch := range channels {
		if ch.v == nil {
			return nil, fmt.Errorf("%s is required", ch.name)
		}
		if *ch.v < 0 || *ch.v > 255 {
			return nil, fmt.Errorf("%s must be between 0 and 255, got %d", ch.name, *ch.v)
		}
	}

	c := imaging.RGBColor{R: uint8(*a.R), G: uint8(*a.G), B: uint8(*a.B)}
	return &BrightnessResult{
		CSS:        c.String(),
		Hex:        c.Hex(),
		Brightness: imaging.Brightness(c),
	}, nil
}

// === Hover Card Handlers ===

type hoverCardArgs struct {
	Src          string `json:"src"`
	Hovered      bool   `json:"hovered"`
	TransitionMs *int   `json:"transition_ms"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

func (s *Server) handleHoverCardStyle(args json.RawMessage) (interface{}, error) {
	var a hoverCardArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Src == "" {
		return nil, errMissingSrc
	}

	opts := []hover.Option{
		hover.WithSize(a.Width, a.Height),
		hover.WithTitle(a.Title),
		hover.WithDescription(a.Description),
	}
	if a.TransitionMs != nil {
		if *a.TransitionMs < 0 {
			return nil, fmt.Errorf("transition_ms must not be negative, got %d", *a.TransitionMs)
		}
		opts = append(opts, hover.WithTransition(*a.TransitionMs))
	}

	card := hover.NewCard(a.Src, opts...)
	// A failed extraction is reported through the card state.
	_ = card.Load(context.Background(), s.extractor)
	card.SetHovered(a.Hovered)

	return card.Snapshot(), nil
}
