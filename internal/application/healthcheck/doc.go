// Package healthcheck aggregates the health of sibling debug services.
//
// The checker probes every configured target concurrently and reports the
// whole set as healthy only when every target answered 200. The monitor
// re-runs the check on an interval, logs the outcome and records metrics.
package healthcheck
