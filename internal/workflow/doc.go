// Package workflow holds the board → list → card drill-down, the per-card
// price and checked edits, and the running total.
//
// A Workflow reads through one of two data sources depending on its Mode:
// the Trello API (ModeRemote) or the local cache (ModeCached). Every change
// to the collections or the selection is persisted. In cached mode the five
// session keys are written back; in remote mode the cache is cleared.
//
// Fetches run outside the state lock. Each fetch slot (boards, lists, cards)
// carries a generation number and a cancel func; starting a new fetch in a
// slot cancels the previous one, and a result that arrives for a generation
// that is no longer current is dropped with ErrSuperseded.
//
// Snapshot returns a deep copy that the UI can read without holding locks.
package workflow
