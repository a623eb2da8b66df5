// Package report turns cleaned charging sessions into the summary numbers and
// derived tables behind the charging dashboard.
//
// The pipeline is Clean -> Filter -> Build. Build computes, for one selection:
//   - Summary: totals and per-day averages
//   - Daily: one row per calendar day of the range
//   - KWh, Duration: fixed-bin histograms of sessions
//   - Frequency: vehicles bucketed by their session count
//   - Hourly: sessions per hour of day, total and average per day
//
// Every table keeps all of its expected rows and fills missing ones with zero.
package report
