// Package config loads trellotally's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/trellotally/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Empty or missing fields take their defaults
//  5. TRELLO_API_KEY and TRELLO_TOKEN override the file
//
// Files ending in .yaml or .yml are parsed as YAML; anything else is TOML.
//
// # TOML Format
//
//	log_file  = "~/.local/state/trellotally/trellotally.log"
//	log_level = "info"
//
//	[trello]
//	api_key  = "..."
//	token    = "..."
//	base_url = "https://api.trello.com/1"
//
//	[cache]
//	backend   = "file"      # file, sqlite, redis or memory
//	path      = "~/.local/share/trellotally/cache.toml"
//	redis_url = "redis://127.0.0.1:6379/0"
//	namespace = "trellotally"
//
//	[ui]
//	theme    = "Nightfox"
//	currency = "$"
//
// Credentials are read as-is and never validated here. A missing or wrong
// token only shows up when the first API request is rejected.
//
// # Path Expansion
//
// Tilde paths are expanded to the home directory and every path is made
// absolute: the config file itself, cache.path and log_file.
package config
