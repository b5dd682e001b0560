// Package server implements the MCP (Model Context Protocol) server for
// dominant color extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes the color
// extractor, its cache and the hover card model through the MCP protocol.
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
// Extraction:
//   - color_extract_dominant: Dominant color of an image, cached by source
//   - color_sample_preview: Downscaled image with the sample region outlined
//
// Cache Control:
//   - color_cache_size: Number of cached colors
//   - color_cache_clear: Drop every cached color
//
// Color Helpers:
//   - color_brightness: WCAG relative luminance of an RGB color
//
// Hover Card:
//   - hover_card_style: Card state, overlay and CSS for a hovered thumbnail
//
// # Color Caching
//
// The server owns one extractor whose cache lives for the lifetime of the
// process. Entries are keyed by the exact src string and are only written on
// success, so a failed source is retried on the next call.
//
// # Configuration
//
// LoadConfig reads DOMINANT_COLOR_LOG_LEVEL, DOMINANT_COLOR_RASTER,
// DOMINANT_COLOR_COALESCE, DOMINANT_COLOR_MAX_BYTES and
// DOMINANT_COLOR_MAX_PIXELS.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "failed to load image: <src>: ..."
package server
