// Package logging builds slog loggers with console and JSON handlers.
//
// The console handler renders one line per record with the component
// attribute hoisted into a prefix; the JSON handler emits machine-parseable
// records with normalized key names. Format defaults to console on a
// terminal and JSON elsewhere.
package logging
