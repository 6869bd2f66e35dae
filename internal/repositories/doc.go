// Package repositories implements SQLite persistence for the domain entities.
//
// Key Implementations:
//   - [UserRepository] : account directory with salted credential digests
//   - [HistoryRepository] : per-user append-only mood score sequences
//
// The history repository serializes appends per user with a keyed mutex so
// concurrent requests for the same user never race, while requests for
// different users proceed in parallel. A history record is created lazily on
// the first append and removed only by an explicit clear; a user without a
// history record is a distinct state from a user with an empty one.
package repositories
