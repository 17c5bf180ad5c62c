// Package config handles configuration loading for widgetdash.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion. Empty fields take defaults, then the result is validated.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from WIDGETDASH_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/widgetdash/config.yaml
//  3. ~/.config/widgetdash/config.yaml
//
// # Environment Variable Expansion
//
// Values can reference environment variables with ${VAR_NAME}. Unset
// variables expand to the empty string.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "localhost:8501"
//
//	database:
//	  path: "/var/lib/widgetdash/sessions.db"   # required
//
//	output:
//	  csv_path: "sampledata.csv"   # rewritten on every widgets rerun
//
//	sessions:
//	  ttl: "24h"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
//	metrics:
//	  enabled: false
//	  path: "/metrics"
package config
