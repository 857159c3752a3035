// Package config provides configuration management for the sales analyzer.
// It loads settings from defaults, an optional YAML file and the environment,
// validates them, and resolves the directories a run reads from and writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML file (SALES_CONFIG_FILE, ./config.yaml or ./configs/config.yaml)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables use the SALES_ prefix followed by the section:
//
//	SALES_SERVER_PORT=8080
//	SALES_PATHS_CATALOG_DIR="Company Wise Products"
//	SALES_REPORT_FORMATS=pdf,xlsx
//	SALES_REPORT_CHROME_PATH=/usr/bin/chromium
//	SALES_LOGGING_LEVEL=debug
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := cfg.Paths.Resolve()
package config
