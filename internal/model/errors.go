package model

import (
	"errors"
	"fmt"
)

// ExitCode defines the process exit codes used by convargs-based tools.
// Scripts can branch on them without parsing stderr.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, including
	// the informational help and version outcomes.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitUsageError indicates the command line was rejected by the resolver.
	ExitUsageError ExitCode = 2

	// ExitConfigError indicates the tool itself is misconfigured (bad
	// extension lists or flag registry). This is a programmer error.
	ExitConfigError ExitCode = 3

	// ExitConfigNotFound indicates an explicitly requested configuration
	// file does not exist.
	ExitConfigNotFound ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message, followed by the underlying error when present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ConfigError reports a violated configuration invariant: empty extension
// lists, a flag registry without help/version, and so on. It is raised
// before any argument is looked at and is never a user mistake.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// NewConfigError formats a ConfigError.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// Sentinels for the recoverable usage errors. A UsageError unwraps to one
// of these so callers can use errors.Is.
var (
	ErrUnknownFlag      = errors.New("unknown flag")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrNoSource         = errors.New("no source file specified")
	ErrSourceNotFound   = errors.New("source file not found")
	ErrSourceExtension  = errors.New("invalid source extension")
	ErrTargetDirUnknown = errors.New("target file has unknown directory")
	ErrTargetDirMissing = errors.New("target directory does not exist")
	ErrTargetExtension  = errors.New("invalid target extension")
	ErrSameFile         = errors.New("source and target are the same")
)

// UsageError is a recoverable command-line error. Message is what the user
// sees after the "Error: " prefix; Value is the offending token or path.
type UsageError struct {
	Kind    error
	Message string
	Value   string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel describing the kind of error.
func (e *UsageError) Unwrap() error {
	return e.Kind
}

// NewUsageError creates a UsageError of the given kind.
func NewUsageError(kind error, value, message string) *UsageError {
	return &UsageError{Kind: kind, Message: message, Value: value}
}
