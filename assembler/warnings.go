package assembler

import (
	"fmt"
	"strings"

	"github.com/erraggy/asynctools/internal/severity"
)

// WarningCategory identifies the type of warning.
type WarningCategory string

const (
	// WarnMissingChannel indicates an operation has no channel reference.
	WarnMissingChannel WarningCategory = "missing_channel"
	// WarnUnresolvedChannel indicates an operation references a channel that is not in the document.
	WarnUnresolvedChannel WarningCategory = "unresolved_channel"
	// WarnUnresolvedMessage indicates an operation references a message that is not in the document.
	WarnUnresolvedMessage WarningCategory = "unresolved_message"
	// WarnForeignMessage indicates an operation references a message of a different channel.
	WarnForeignMessage WarningCategory = "foreign_message"
)

// BuildWarning describes a reference problem in an assembled document.
type BuildWarning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// Path is the JSON path to the affected element.
	Path string
	// Message is a human-readable description.
	Message string
	// Severity indicates warning severity.
	Severity severity.Severity
}

// String returns the warning message.
func (w *BuildWarning) String() string {
	return w.Message
}

// BuildWarnings is a collection of BuildWarning.
type BuildWarnings []*BuildWarning

// ByCategory filters warnings by category.
func (ws BuildWarnings) ByCategory(cat WarningCategory) BuildWarnings {
	var result BuildWarnings
	for _, w := range ws {
		if w.Category == cat {
			result = append(result, w)
		}
	}
	return result
}

// Strings returns the warning messages.
func (ws BuildWarnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		result[i] = w.String()
	}
	return result
}

// Summary returns a formatted summary of warnings.
func (ws BuildWarnings) Summary() string {
	if len(ws) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d warning(s):\n", len(ws))
	for _, w := range ws {
		sb.WriteString("  - ")
		sb.WriteString(w.String())
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func newWarning(cat WarningCategory, sev severity.Severity, path, format string, args ...any) *BuildWarning {
	return &BuildWarning{
		Category: cat,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	}
}
