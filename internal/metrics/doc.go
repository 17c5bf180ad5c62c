// Package metrics exposes Prometheus collectors for demo page activity.
//
// A nil *Metrics is valid and records nothing.
package metrics
