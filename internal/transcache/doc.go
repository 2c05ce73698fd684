// Package transcache caches word level transcripts in SQLite keyed by
// a fingerprint of the source media file.
package transcache
