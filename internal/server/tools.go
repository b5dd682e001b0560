package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var srcProperty = map[string]interface{}{
	"type":        "string",
	"description": "Image source: http(s) URL, data: URI, file:// URL or filesystem path. Used verbatim as the cache key.",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Extraction
		{
			Name:        "color_extract_dominant",
			Description: "Extract the dominant color of an image: the filtered average of the center 50% of the image after downscaling to at most 200x200. Near-black, near-white and transparent pixels are ignored; mid-gray is returned when nothing remains. Results are cached by source.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"src": srcProperty,
				},
				"required": []string{"src"},
			},
		},
		{
			Name:        "color_sample_preview",
			Description: "Show what the color sampler sees: the downscaled image with the sample region outlined and the sampled region itself, both as base64-encoded PNG. Does not touch the cache.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"src": srcProperty,
					"outline_color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (e.g., '#00FF00'). Default '#FF0000'",
						"default":     "#FF0000",
					},
				},
				"required": []string{"src"},
			},
		},

		// Cache Control
		{
			Name:        "color_cache_size",
			Description: "Return the number of cached dominant colors.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "color_cache_clear",
			Description: "Drop every cached dominant color. Later extractions reload their images.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Color Helpers
		{
			Name:        "color_brightness",
			Description: "Compute the WCAG relative luminance (0-1) of an RGB color and format it as CSS.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"r": channelProperty("Red"),
					"g": channelProperty("Green"),
					"b": channelProperty("Blue"),
				},
				"required": []string{"r", "g", "b"},
			},
		},

		// Hover Card
		{
			Name:        "hover_card_style",
			Description: "Compute the style of a thumbnail card whose background fills with the image's dominant color on hover. Returns the card state (loading, ready, failed), overlay text and CSS.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"src": srcProperty,
					"hovered": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the pointer is over the card. Default false",
						"default":     false,
					},
					"transition_ms": map[string]interface{}{
						"type":        "integer",
						"description": "Background transition duration in milliseconds. Default 300",
						"default":     300,
					},
					"width": map[string]interface{}{
						"type":        "string",
						"description": "Card width as a CSS length. Default '300px'",
					},
					"height": map[string]interface{}{
						"type":        "string",
						"description": "Image height as a CSS length. Default '180px'",
					},
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Optional title shown below the image",
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "Optional description shown below the title",
					},
				},
				"required": []string{"src"},
			},
		},
	}
}

func channelProperty(name string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": name + " channel (0-255)",
		"minimum":     0,
		"maximum":     255,
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
