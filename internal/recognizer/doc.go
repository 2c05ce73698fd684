// Package recognizer wraps the whisperx speech recognizer and converts
// its JSON output into word level timestamps.
package recognizer
