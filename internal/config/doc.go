// Package config provides configuration management for the sales cleanup tool.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML configuration file (config.yaml, configs/config.yaml, or SALESCLEAN_CONFIG_FILE)
//	3. Default values (lowest priority)
//
// Variables in a .env file in the working directory are added to the
// environment before loading; variables that are already set are kept.
//
// # Environment Variables
//
// All environment variables follow the pattern SALESCLEAN_<SECTION>_<FIELD>:
//
//	SALESCLEAN_CLEANUP_SOURCE_FILE=../data/raw/messy_supermarket_sales.xlsx
//	SALESCLEAN_CLEANUP_SHEET_NAME="Cleaned Data"
//	SALESCLEAN_LOGGING_LEVEL=debug
//	SALESCLEAN_TELEMETRY_METRICS_FILE=metrics/salescleanup.prom
//
// The defaults reproduce the fixed relative paths of the original cleanup job,
// so a bare run needs no configuration at all.
//
// # Path Management
//
// Paths resolves every configured location against the working directory:
//
//	paths, err := config.GetPaths(cfg)
//	if err := paths.EnsureDirectories(); err != nil { ... }
package config
