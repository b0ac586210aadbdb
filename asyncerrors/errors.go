package asyncerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates an input was rejected before merging.
	ErrValidation = errors.New("validation error")

	// ErrScan indicates a scanner failed.
	ErrScan = errors.New("scan error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrInvariant indicates a violated programming invariant.
	ErrInvariant = errors.New("invariant violation")
)

// ParseError represents a failure to parse a partial AsyncAPI description.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents an input the merger refuses to fold.
type ValidationError struct {
	// Source is the name of the source that carried the input
	Source string
	// Path is the JSON path to the problematic entry (e.g., "channels.orders")
	Path string
	// Index is the position of the entry within its source (-1 if not applicable)
	Index int
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" (entry %d)", e.Index)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ScanError represents a scanner that could not produce its entries.
type ScanError struct {
	// Scanner is the name of the failing scanner
	Scanner string
	// Protocol is the messaging protocol the scanner covers (e.g., "kafka")
	Protocol string
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ScanError) Error() string {
	msg := "scan error"
	if e.Scanner != "" {
		msg += " in " + e.Scanner
	}
	if e.Protocol != "" {
		msg += " (" + e.Protocol + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ScanError) Is(target error) bool {
	return target == ErrScan
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// InvariantError describes a violated programming invariant.
// It is raised with panic, never returned, because the caller broke a contract
// that no recovery can repair.
type InvariantError struct {
	// Component names the function or package whose contract was broken
	Component string
	// Message describes the violation
	Message string
}

// Error returns a human-readable error message.
func (e *InvariantError) Error() string {
	msg := "invariant violation"
	if e.Component != "" {
		msg += " in " + e.Component
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
