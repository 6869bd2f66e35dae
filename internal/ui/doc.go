// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view dashboard over a user's mood history:
//  1. [HistoryView] : Browse scored tracks in insertion order
//  2. [SummaryView] : Averaged mood with its interpretation band
//  3. [AnalyzeView] : Monitor real-time progress of a batch analysis
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the AnalysisEngine, providing non-blocking status reporting during batch runs.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
