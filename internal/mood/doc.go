// Package mood converts classifier emotion output into bounded mood scores
// and interprets averaged scores as categorical mood bands.
package mood
