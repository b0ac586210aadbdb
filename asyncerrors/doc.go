// Package asyncerrors provides structured error types for the asynctools library.
//
// Import path: github.com/erraggy/asynctools/asyncerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a malformed partial description from a failed
// scanner or a bad configuration file.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues in partial descriptions
//   - [ValidationError]: inputs the merger refuses to fold (nil entities, empty names)
//   - [ScanError]: a scanner failed to produce its entries
//   - [ConfigError]: invalid configuration or input options
//   - [InvariantError]: a programming invariant was violated; raised by panic
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrScan]: Matches any [ScanError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrInvariant]: Matches any [InvariantError]
//
// # Usage Examples
//
//	result, err := merger.MergeWithOptions(merger.WithFilePaths("kafka.yaml", "amqp.yaml"))
//	if errors.Is(err, asyncerrors.ErrParse) {
//	    // one of the partial descriptions is malformed
//	}
//
//	var scanErr *asyncerrors.ScanError
//	if errors.As(err, &scanErr) {
//	    fmt.Printf("scanner %s failed: %v\n", scanErr.Scanner, scanErr.Cause)
//	}
//
// # Invariant Violations
//
// The merge driver treats a nil channel or operation as a programming error
// and panics with an [*InvariantError]. Use merger.Merger to have inputs
// checked up front and reported as a [ValidationError] instead.
package asyncerrors
