// Package ui provides the Bubble Tea terminal interface for trellotally.
//
// The screen has a header (data source mode, active board and list, a
// spinner while work is in flight), up to three side-by-side panes, and a
// footer with key hints and the running total.
//
//   - Boards: always shown. Enter opens the board's lists.
//   - Lists: shown once there are boards. Enter opens the list's cards.
//   - Cards: shown once a list is active. Each row has a checkbox, the card
//     name and its price. Space toggles checked; e or enter edits the price.
//
// Every user intent becomes a workflow operation run inside a tea.Cmd. The
// command replies with a resultMsg carrying a fresh workflow.Snapshot, and
// the model renders from that snapshot only. Snapshots older than the one
// already held are ignored.
//
// Themes cycle with T and the choice is saved through the prefs package.
package ui
