// Package config loads ledgerdesk's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ledgerdesk/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Malformed TOML, an unknown environment or role, and a production
// environment with no production URL are errors.
//
// # API Root
//
// The API root comes from, in order: api.base_url, then the URL for the
// selected environment. development defaults to http://localhost:5000/api;
// production has no default. Command-line flags override the file.
//
// # TOML Format
//
//	environment = "development"
//	role = "customer"
//	self_label = "Self"
//	done_label = "Done"
//	pending_label = "Pending"
//	stats_interval_seconds = 30
//	request_timeout_seconds = 0
//	log_file = "~/.local/share/ledgerdesk/ledgerdesk.log"
//	log_level = "info"
//	metrics_addr = ""
//
//	[api]
//	base_url = ""
//	development = "http://localhost:5000/api"
//	production = "https://ledger.example.com/api"
//
// All fields are optional. Tilde expansion is performed on log_file.
package config
