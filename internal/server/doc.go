// Package server provides HTTP routing, middleware, and handlers for the mood
// analysis web service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method-qualified patterns, so handlers can read path parameters with
// [http.Request.PathValue].
//
// # Handlers
//
// [MoodHandler] exposes the lyrics-to-mood pipeline and the per-user history
// queries. [AuthHandler] covers the signup/login glue around the account
// directory. [TrackHandler] reports and analyzes the currently playing track.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow used
// when linking a Spotify account. The handler validates the state parameter
// (CSRF protection), exchanges the authorization code for tokens, and sends
// the result through a channel. It only processes one callback to prevent
// replay attacks.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
