// Package models defines domain entities and payload shapes for the moodscope service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs crossing package boundaries
//   - [EmotionResult] : Classifier output consumed (never produced) by the core
//   - [Track] : Currently-playing track metadata from a music service
//   - [MoodResult] : One pipeline run's classification, score, and history count
//   - [MoodSummary] : Averaged history with its interpretation band
//
// 2. Persistent Entities: Database-backed records
//   - [User] : Account directory entries with credential digests
//
// Mood scores are plain ints in [1,10]; the scorer owns their derivation and
// the history repository owns their persistence.
package models
