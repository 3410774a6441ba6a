package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func dirProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to a dataset directory holding one radar_data file and invader files",
	}
}

func metricProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"ratio", "jaro-winkler"},
		"description": "Similarity metric. Defaults to the server configuration (ratio)",
	}
}

func thresholdProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"minimum":     0,
		"maximum":     1,
		"description": "Peak threshold between 0 and 1. Only scores strictly above it survive. Defaults to the server configuration",
	}
}

func boundsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"inclusive", "legacy"},
		"description": "Scan bounds. 'legacy' skips the last row and column of window positions",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Datasets
		{
			Name:        "radar_load",
			Description: "Load a radar dataset directory and return the radar size and every invader pattern. Datasets are cached; pass reload to re-read from disk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": dirProperty(),
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Discard the cached copy first",
						"default":     false,
					},
				},
				"required": []string{"dir"},
			},
		},
		{
			Name:        "radar_window",
			Description: "Return a block of radar cells. Blocks running past the right or bottom edge are truncated; negative offsets and blocks larger than the radar are errors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": dirProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Left column (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Top row (0-based)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Block width in cells",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Block height in cells",
					},
				},
				"required": []string{"dir", "x", "y", "width", "height"},
			},
		},

		// Detection
		{
			Name:        "radar_scan",
			Description: "Detect every invader in a dataset. Returns the overlap-free match set with field coordinates, scores and the radar cells each match covers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir":       dirProperty(),
					"threshold": thresholdProperty(),
					"metric":    metricProperty(),
					"bounds":    boundsProperty(),
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Re-read the dataset from disk first",
						"default":     false,
					},
				},
				"required": []string{"dir"},
			},
		},
		{
			Name:        "radar_score_window",
			Description: "Score one invader pattern against the radar at a field position. Positions up to half a pattern off the top or left edge are padded like a scan pads them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": dirProperty(),
					"pattern": map[string]interface{}{
						"type":        "string",
						"description": "Invader name (file stem, e.g. invader_1)",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Field column of the pattern's top-left cell",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Field row of the pattern's top-left cell",
					},
					"metric": metricProperty(),
				},
				"required": []string{"dir", "pattern", "x", "y"},
			},
		},
		{
			Name:        "radar_heatmap",
			Description: "Render one pattern's score surface as a base64-encoded PNG heatmap. Cells that survive peak filtering are outlined. Useful for choosing a threshold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": dirProperty(),
					"pattern": map[string]interface{}{
						"type":        "string",
						"description": "Invader name (file stem, e.g. invader_1)",
					},
					"threshold": thresholdProperty(),
					"metric":    metricProperty(),
					"bounds":    boundsProperty(),
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per surface cell. Default 8",
						"default":     8,
					},
				},
				"required": []string{"dir", "pattern"},
			},
		},

		// Similarity
		{
			Name:        "radar_similarity",
			Description: "Compare two strings: edit distance, normalized ratio, and the score under the selected metric.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"a": map[string]interface{}{
						"type":        "string",
						"description": "First string",
					},
					"b": map[string]interface{}{
						"type":        "string",
						"description": "Second string",
					},
					"metric": metricProperty(),
				},
				"required": []string{"a", "b"},
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
