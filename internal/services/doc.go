// Package services defines the shared error taxonomy for pipeline stages.
//
// Stages wrap failures with sentinel markers so callers can classify an
// error (fatal input problem, recoverable mux failure, empty transcript)
// without string matching.
package services
