// Package severity provides severity level constants for the warnings
// reported by the merger and assembler packages.
//
// The merger reports information that first-wins resolution discarded
// (a second description for the same channel, a differing operation action)
// as warnings; the assembler reports references it could not resolve.
// Purely informational notices use SeverityInfo.
package severity

import "fmt"

// Severity indicates the severity level of a reported issue.
type Severity int

const (
	// SeverityError indicates a problem that leaves the assembled document inconsistent.
	SeverityError Severity = iota

	// SeverityWarning indicates information was dropped or could not be verified.
	SeverityWarning

	// SeverityInfo indicates a non-actionable notice about a processing choice.
	SeverityInfo

	// SeverityCritical indicates input that could not be processed at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name so JSON and YAML output stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name produced by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("severity: unknown level %q", string(text))
	}
	return nil
}
