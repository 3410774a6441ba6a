// Package config loads invader-radar settings.
//
// Settings come from defaults, then an optional YAML file, then environment
// variables; command-line flags are applied on top by the caller. The file is
// looked up in order at $INVADER_RADAR_CONFIG,
// $XDG_CONFIG_HOME/invader-radar/config.yaml and
// ~/.config/invader-radar/config.yaml.
//
// Example file:
//
//	threshold: 0.85
//	metric: ratio
//	scan_bounds: inclusive
//	workers: 4
//	bitmap:
//	  cell_width: 8
//	  cell_height: 12
//	ocr:
//	  language: eng
//	  alphabet: "o-"
//	log_level: debug
package config
