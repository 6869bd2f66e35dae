// Package tasks orchestrates batch mood analysis with real-time progress reporting.
//
// # Core Operation
//
// [AnalysisEngine.BulkAnalyze] scores a set of tracks for one user:
//   - Fetches lyrics for each track (rate limited, providers throttle scrapers)
//   - Runs each lyrics blob through the mood pipeline
//   - Collects per-track results including failures
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data for advanced UI rendering. Updates use select with default to
// prevent blocking: a slow consumer drops updates instead of stalling the
// analysis.
//
// # Worker Pool
//
// Lyrics fetches dominate wall time, so tracks are distributed over a small
// worker pool. Partial failures are collected per track and never abort the
// batch.
package tasks
