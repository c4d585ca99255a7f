// Package config loads the dashboard configuration.
//
// # Configuration Sources
//
// Values are layered in this order, later sources winning:
//
//	1. Default() values
//	2. YAML file (config.yaml, configs/config.yaml, or an explicit path)
//	3. Environment variables prefixed with EMR_, after loading .env if present
//
// # Environment Variables
//
// Nested sections map to underscored names:
//
//	EMR_SERVER_PORT=8080
//	EMR_SOURCE_FILE="EMR_NDR CONC_120725.xlsx"
//	EMR_SOURCE_SHEET=Conc
//	EMR_DASHBOARD_PREVIEW_LIMIT=100
//	EMR_LOGGING_LEVEL=debug
//	EMR_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Source Resolution
//
// A relative source path is looked up in the working directory first, then
// under data/, then next to the executable. ResolveSourcePath returns the
// configured path unchanged when no candidate exists so that the loader
// reports the file as missing.
package config
