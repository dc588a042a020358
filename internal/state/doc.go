// Package state provides thread-safe storage for the ledger summary.
//
// # Overview
//
// The Store shares the latest /customer/stats result between the background
// poller, the post-update refresh, and the UI.
//
//	Producers:                     Consumer (UI):
//	┌──────────────────┐          ┌──────────────────┐
//	│ poller (30s)     │          │                  │
//	│ refresh after    │          │                  │
//	│ a status update  │          │                  │
//	│      ↓           │          │                  │
//	│ store.Refresh()  │─────────→│ store.Snapshot() │
//	│                  │ (RWMutex)│      ↓           │
//	│                  │          │  render header   │
//	└──────────────────┘          └──────────────────┘
//
// # Failure Tracking
//
// A failed refresh keeps the previous stats and records the error. Two or
// more consecutive failures mark the snapshot offline; the next success
// clears the count.
//
// # Snapshots
//
// Snapshot returns a value copy. Stats holds no reference types, so callers
// may keep snapshots without locking. The last error is rewrapped so callers
// cannot compare it by identity against the stored one.
package state
