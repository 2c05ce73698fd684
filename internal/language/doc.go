// Package language provides unified language code normalization and mapping.
//
// Conversions between ISO 639-1, ISO 639-2, and display names are
// consolidated here so the recognizer and mux stages agree on codes.
package language
