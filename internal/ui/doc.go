// Package ui implements the ledgerdesk terminal interface using Bubble Tea.
//
// The records view lists ledger records with their status badge and operator
// attribution. Pressing enter on a pending record opens the selection dialog
// (self, an operator, or one of its channels, or a new operator); pressing it
// on a done record marks it pending straight away. Rows are patched only after
// the server confirms the update, and every result shows a transient alert.
//
// The header reads the summary from a state.Store that a background poller
// keeps fresh. All network calls run as tea.Cmd closures and report back as
// messages, so Update never blocks.
package ui
