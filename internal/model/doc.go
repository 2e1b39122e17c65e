// Package model defines the domain types and value objects for convargs.
//
// This package contains pure data structures with no external dependencies:
// flags and their registry, extension lists, resolved paths and the tagged
// Outcome returned by every parse call.
//
// The package also defines exit codes (ExitCode), the CLIError type that
// carries them to the process boundary, and the two error families raised
// by the resolver: ConfigError for programmer mistakes and UsageError for
// rejected command lines.
package model
