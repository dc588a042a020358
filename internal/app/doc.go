// Package app provides the orchestration layer for ledgerdesk.
//
// # Overview
//
// This package wires configuration, logging, metrics, the ledger API client,
// the operator directory, the status toggler, and the UI together. It is the
// composition root shared by the TUI and the one-shot CLI commands.
//
// # Architecture
//
// Build performs the wiring:
//
//  1. Load ~/.config/ledgerdesk/config.toml and apply flag overrides
//  2. Resolve the API root for the selected environment
//  3. Open the JSON log file and build the slog logger
//  4. Create a Prometheus registry and the client metrics
//  5. Build the ledger.Client, directory.Directory, and records.Toggler
//
// Run then adds the long-lived pieces:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Build()            Config, logger, client, directory
//	       ├─────> metrics.Serve()    Optional /metrics endpoint
//	       ├─────> StartPoller()      Summary refresh every 30s
//	       └─────> ui.Run()           Start TUI (blocks); Init loads operators
//
// # Polling Behavior
//
// The poller refreshes the summary immediately and then at a fixed interval
// (default: 30 seconds). Failures are logged and counted in the state.Store;
// the header shows OFFLINE after two in a row. The UI also refreshes the
// summary right after every confirmed status update.
//
// # Error Handling
//
// Fatal errors (returned from Build and Run):
//   - Config file unreadable or invalid
//   - Production environment selected without a production URL or --base-url
//   - Log file cannot be created
//
// Recoverable errors (logged, the UI keeps running):
//   - Summary poll failures
//   - The initial operator load
package app
