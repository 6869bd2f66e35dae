// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the three-view TUI workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. History: Server-rendered table of scored tracks with hx-get paging
//  2. Summary: HTMX partial swap showing the average mood and its band
//  3. Batch Monitor: SSE (Server-Sent Events) streaming progress updates
//
// Core Components
//
//   - HTTP Server: reuses server.BasicRouter with the JSON API mounted alongside
//   - Service Integration: Uses the same pipeline.Engine and tasks.AnalysisEngine as the TUI
//   - Session Management: Cookie-based sessions tying a browser to a username
//   - SSE Handler: Streams real-time progress during batch analysis
//
// Routes
//
//	GET  /                      → History view (requires session)
//	GET  /login                 → Login form, POST target is the JSON API
//	GET  /summary               → HTMX partial: average mood card
//	POST /batch                 → Start batch analysis, return SSE endpoint
//	GET  /batch/{id}/stream     → SSE progress stream
//	GET  /batch/{id}/result     → Final per-track breakdown
//
// Templates
//
//   - base.html: Layout with navigation, session status
//   - history.html: Table with hx-get paging
//   - summary.html: Partial template for the average mood card
//   - progress.html: SSE consumer with progress bar
//   - results.html: Scored/failed track breakdown
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - Session cookies: username for history lookups
//   - mood_scores rows: already durable, so views re-query on navigation
//   - In-memory channels: SSE connections for active batch runs
//
// # Progress Streaming
//
// Batch progress uses Server-Sent Events:
//  1. POST /batch launches AnalysisEngine.BulkAnalyze, returns a run ID
//  2. Client opens SSE connection to /batch/{id}/stream
//  3. Handler forwards tasks.ProgressUpdate values as SSE events
//  4. On completion, send "done" event with redirect URL
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - net/http: HTTP server and SSE
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. HTTP server setup with route registration
//  2. Template structure with HTMX integration
//  3. Session middleware for the username cookie
//  4. History handler over repositories.HistoryRepository
//  5. Summary handler (HTMX partial)
//  6. Batch endpoint launching BulkAnalyze
//  7. SSE handler streaming progress updates
//  8. Result handler displaying the BulkAnalysisResult
//  9. Error handling and validation
//
// # Testing Strategy
//
// Use httptest:
//   - Fake Processor and LyricsFetcher for batch runs
//   - Validate HTMX headers and response structure
//   - Test SSE stream formatting
package web
