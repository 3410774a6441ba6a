package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/invader-radar/internal/config"
	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/grid"
	"github.com/ironsheep/invader-radar/internal/render"
	"github.com/ironsheep/invader-radar/internal/similarity"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "radar_scan", "radar_window").
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
//  2. Applies the server configuration to omitted parameters
//  3. Loads the dataset from cache as needed
//  4. Calls the appropriate grid/similarity/detection/render function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Datasets
	case "radar_load":
		return s.handleRadarLoad(args)
	case "radar_window":
		return s.handleRadarWindow(args)

	// Detection
	case "radar_scan":
		return s.handleRadarScan(args)
	case "radar_score_window":
		return s.handleRadarScoreWindow(args)
	case "radar_heatmap":
		return s.handleRadarHeatmap(args)

	// Similarity
	case "radar_similarity":
		return s.handleRadarSimilarity(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// settings applies per-call overrides to the server configuration.
func (s *Server) settings(threshold *float64, metric, bounds string) (*config.Config, error) {
	cfg := *s.cfg
	if threshold != nil {
		cfg.Threshold = *threshold
	}
	if metric != "" {
		cfg.Metric = metric
	}
	if bounds != "" {
		cfg.ScanBounds = bounds
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// === Dataset Handlers ===

type radarLoadArgs struct {
	Dir    string `json:"dir"`
	Reload bool   `json:"reload"`
}

type patternInfo struct {
	Name   string   `json:"name"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

type datasetInfo struct {
	Dir       string        `json:"dir"`
	RadarFile string        `json:"radar_file"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Patterns  []patternInfo `json:"patterns"`
}

func (s *Server) handleRadarLoad(args json.RawMessage) (interface{}, error) {
	var a radarLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		s.cache.Evict(a.Dir)
	}
	ds, err := s.cache.Load(a.Dir)
	if err != nil {
		return nil, err
	}

	info := &datasetInfo{
		Dir:       ds.Dir,
		RadarFile: ds.RadarFile,
		Width:     ds.Radar.Width(),
		Height:    ds.Radar.Height(),
		Patterns:  make([]patternInfo, 0, len(ds.Patterns)),
	}
	for _, p := range ds.Patterns {
		info.Patterns = append(info.Patterns, patternInfo{
			Name:   p.Name,
			Width:  p.Width(),
			Height: p.Height(),
			Rows:   p.Rows(),
		})
	}
	return info, nil
}

type radarWindowArgs struct {
	Dir    string `json:"dir"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type windowResult struct {
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

func (s *Server) handleRadarWindow(args json.RawMessage) (interface{}, error) {
	var a radarWindowArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ds, err := s.cache.Load(a.Dir)
	if err != nil {
		return nil, err
	}
	w, err := grid.Window(ds.Radar, a.Width, a.Height, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &windowResult{X: a.X, Y: a.Y, Width: w.Width(), Height: w.Height(), Rows: w.Rows()}, nil
}

// === Detection Handlers ===

type radarScanArgs struct {
	Dir       string   `json:"dir"`
	Threshold *float64 `json:"threshold"`
	Metric    string   `json:"metric"`
	Bounds    string   `json:"bounds"`
	Reload    bool     `json:"reload"`
}

type scanResult struct {
	*render.Report
	Candidates int `json:"candidates"`
}

func (s *Server) handleRadarScan(args json.RawMessage) (interface{}, error) {
	var a radarScanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := s.settings(a.Threshold, a.Metric, a.Bounds)
	if err != nil {
		return nil, err
	}
	if a.Reload {
		s.cache.Evict(a.Dir)
	}
	ds, err := s.cache.Load(a.Dir)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.EngineOptions(log.Default())
	if err != nil {
		return nil, err
	}
	res, err := detection.NewEngine(opts...).Analyze(ds.Radar, ds.Patterns)
	if err != nil {
		return nil, err
	}

	report, err := render.NewReport(ds.Radar, res.Matches, render.Meta{
		Source:    ds.Dir,
		Threshold: cfg.Threshold,
		Metric:    cfg.Metric,
	})
	if err != nil {
		return nil, err
	}
	return &scanResult{Report: report, Candidates: len(res.Candidates)}, nil
}

type radarScoreWindowArgs struct {
	Dir     string `json:"dir"`
	Pattern string `json:"pattern"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Metric  string `json:"metric"`
}

type scoreWindowResult struct {
	Pattern string   `json:"pattern"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Score   float64  `json:"score"`
	Window  []string `json:"window"`
}

func (s *Server) handleRadarScoreWindow(args json.RawMessage) (interface{}, error) {
	var a radarScoreWindowArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := s.settings(nil, a.Metric, "")
	if err != nil {
		return nil, err
	}
	metric, err := similarity.MetricByName(cfg.Metric)
	if err != nil {
		return nil, err
	}
	ds, err := s.cache.Load(a.Dir)
	if err != nil {
		return nil, err
	}
	p, ok := ds.Pattern(a.Pattern)
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", a.Pattern)
	}

	// Score in the enlarged grid so windows hanging off the top or left
	// edge are padded the same way a scan pads them.
	halfW, halfH := p.Width()/2, p.Height()/2
	enlarged := grid.Enlarge(ds.Radar, p.Width(), p.Height())
	w, err := grid.Window(enlarged, p.Width(), p.Height(), a.X+halfW, a.Y+halfH)
	if err != nil {
		return nil, err
	}
	if w.Width() != p.Width() || w.Height() != p.Height() {
		return nil, fmt.Errorf("window at (%d,%d) runs past the radar edge", a.X, a.Y)
	}

	score, err := similarity.NewWindowScorer(metric).Score(w, p.Grid)
	if err != nil {
		return nil, err
	}
	return &scoreWindowResult{Pattern: p.Name, X: a.X, Y: a.Y, Score: score, Window: w.Rows()}, nil
}

type radarHeatmapArgs struct {
	Dir       string   `json:"dir"`
	Pattern   string   `json:"pattern"`
	Threshold *float64 `json:"threshold"`
	Metric    string   `json:"metric"`
	Bounds    string   `json:"bounds"`
	Scale     int      `json:"scale"`
}

func (s *Server) handleRadarHeatmap(args json.RawMessage) (interface{}, error) {
	var a radarHeatmapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := s.settings(a.Threshold, a.Metric, a.Bounds)
	if err != nil {
		return nil, err
	}
	ds, err := s.cache.Load(a.Dir)
	if err != nil {
		return nil, err
	}
	p, ok := ds.Pattern(a.Pattern)
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", a.Pattern)
	}

	// Run the configured pipeline for this one pattern so the outlined
	// peaks are exactly the candidates a scan would produce.
	engineOpts, err := cfg.EngineOptions(log.Default())
	if err != nil {
		return nil, err
	}
	res, err := detection.NewEngine(engineOpts...).Analyze(ds.Radar, []grid.Pattern{p})
	if err != nil {
		return nil, err
	}
	surface := res.Surfaces[0]
	if surface.Scores == nil {
		return nil, fmt.Errorf("pattern %q has no scan positions", p.Name)
	}

	opts := render.DefaultHeatmapOptions()
	if a.Scale > 0 {
		opts.Scale = a.Scale
	}
	return render.EncodeHeatmap(surface.Scores, surface.Peaks, opts)
}

// === Similarity Handlers ===

type radarSimilarityArgs struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Metric string `json:"metric"`
}

type similarityResult struct {
	similarity.Comparison
	Metric     string  `json:"metric"`
	Similarity float64 `json:"similarity"`
}

func (s *Server) handleRadarSimilarity(args json.RawMessage) (interface{}, error) {
	var a radarSimilarityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := s.settings(nil, a.Metric, "")
	if err != nil {
		return nil, err
	}
	metric, err := similarity.MetricByName(cfg.Metric)
	if err != nil {
		return nil, err
	}
	return &similarityResult{
		Comparison: similarity.Compare(a.A, a.B),
		Metric:     cfg.Metric,
		Similarity: metric.Similarity(a.A, a.B),
	}, nil
}
