// Package demo contains the two demo scripts served by widgetdash.
//
// Each script is a straight-line function from widget state to render
// instructions: it takes a *page.Page, issues render calls in order and
// returns. Scripts keep no state of their own; the host reruns them from the
// top on every interaction.
//
//   - Dashboard: title, text, a fixed two-column table and a line chart of
//     random normal data regenerated on every rerun.
//   - Widgets: text input, slider and select box echoed back as text, a fixed
//     People table written to the CSV sink on every rerun, and an optional
//     uploaded CSV rendered as a table.
package demo
