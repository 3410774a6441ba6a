// Package server implements the MCP (Model Context Protocol) server for
// radar analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes invader detection
// through the MCP protocol, so an assistant can load a radar dataset, scan
// it, and inspect individual windows and score surfaces.
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
// Datasets:
//   - radar_load: Load a dataset directory and list its patterns
//   - radar_window: Extract a block of radar cells
//
// Detection:
//   - radar_scan: Run the full detection pipeline
//   - radar_score_window: Score one pattern at one field position
//   - radar_heatmap: Render a pattern's score surface as a PNG
//
// Similarity:
//   - radar_similarity: Compare two strings
//
// Omitted threshold, metric and bounds arguments fall back to the server's
// configuration (see package config).
//
// # Dataset Caching
//
// Datasets are cached by directory and reused across tool calls. Pass
// "reload": true to radar_load or radar_scan to re-read a directory that
// changed on disk.
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
//	srv := server.New(cfg, version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
