// Package selection implements the operator/channel selection dialog as a
// plain state machine.
//
// # States
//
//	Closed -> ListVisible -> (ChannelVisible | Resolved) -> Closed
//	ListVisible -> NewOperatorForm -> ListVisible
//
// The operator list always starts with the self-operated entry and ends with
// the create entry. Choosing an operator that owns channels moves to the
// channel list; one without channels resolves immediately.
//
// # Resolution
//
// Open returns a Ticket. Every resolving call returns an Outcome stamped with
// that ticket, and a cancelled Outcome is produced by Close while a choice is
// still pending. Save results are fed back with the ticket from the
// SaveRequest; a result whose ticket no longer matches the open dialog is
// dropped, so a late reply can never act on a dialog opened afterwards.
//
// Creating an operator returns to the list with the new entry highlighted.
// The dialog never resolves on its own after a save.
package selection
