// Package logtail reads the tail of ledgerdesk's own log file and renders its
// JSON lines for the activity view.
//
// Read uses a ring buffer of maxLines entries, so it makes one pass over the
// file in O(maxLines) memory and returns lines in chronological order. A
// missing file is not an error.
//
// Format turns a slog JSON line into "15:04:05 LEVEL msg key=value ...", with
// attributes sorted by key. Lines that are not JSON pass through unchanged.
package logtail
