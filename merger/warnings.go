package merger

import (
	"fmt"
	"strings"

	"github.com/erraggy/asynctools/internal/severity"
)

// WarningCategory identifies the type of warning.
type WarningCategory string

const (
	// WarnDescriptionConflict indicates a later description of a channel or
	// operation was ignored because an earlier one was kept.
	WarnDescriptionConflict WarningCategory = "description_conflict"
	// WarnActionConflict indicates operations sharing a name declared different actions.
	WarnActionConflict WarningCategory = "action_conflict"
	// WarnChannelRefConflict indicates operations sharing a name pointed at different channels.
	WarnChannelRefConflict WarningCategory = "channel_ref_conflict"
	// WarnMessageDropped indicates a channel message was dropped because the
	// same key was already registered with different content.
	WarnMessageDropped WarningCategory = "message_dropped"
)

// MergeWarning describes information the first-wins rule discarded.
type MergeWarning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// Path is the JSON path to the affected element.
	Path string
	// Message is a human-readable description.
	Message string
	// FirstSource is the source whose value was kept.
	FirstSource string
	// SourceName is the source whose value was dropped.
	SourceName string
	// Severity indicates warning severity.
	Severity severity.Severity
	// Context provides additional details.
	Context map[string]any
}

// String returns the warning message.
func (w *MergeWarning) String() string {
	return w.Message
}

// NewDescriptionConflictWarning creates a warning for differing descriptions.
// section is "channels" or "operations".
func NewDescriptionConflictWarning(section, name, firstSource, secondSource string) *MergeWarning {
	return &MergeWarning{
		Category:    WarnDescriptionConflict,
		Path:        fmt.Sprintf("%s.%s.description", section, name),
		Message:     fmt.Sprintf("%s '%s' description from %s ignored (kept %s)", singular(section), name, secondSource, firstSource),
		FirstSource: firstSource,
		SourceName:  secondSource,
		Severity:    severity.SeverityInfo,
		Context: map[string]any{
			"section": section,
			"name":    name,
		},
	}
}

// NewActionConflictWarning creates a warning for operations with differing actions.
func NewActionConflictWarning(name, firstAction, secondAction, firstSource, secondSource string) *MergeWarning {
	return &MergeWarning{
		Category:    WarnActionConflict,
		Path:        fmt.Sprintf("operations.%s.action", name),
		Message:     fmt.Sprintf("operation '%s' action '%s' from %s ignored (kept '%s' from %s)", name, secondAction, secondSource, firstAction, firstSource),
		FirstSource: firstSource,
		SourceName:  secondSource,
		Severity:    severity.SeverityWarning,
		Context: map[string]any{
			"first_action":  firstAction,
			"second_action": secondAction,
		},
	}
}

// NewChannelRefConflictWarning creates a warning for operations bound to differing channels.
func NewChannelRefConflictWarning(name, firstRef, secondRef, firstSource, secondSource string) *MergeWarning {
	return &MergeWarning{
		Category:    WarnChannelRefConflict,
		Path:        fmt.Sprintf("operations.%s.channel", name),
		Message:     fmt.Sprintf("operation '%s' channel '%s' from %s ignored (kept '%s' from %s)", name, secondRef, secondSource, firstRef, firstSource),
		FirstSource: firstSource,
		SourceName:  secondSource,
		Severity:    severity.SeverityWarning,
		Context: map[string]any{
			"first_ref":  firstRef,
			"second_ref": secondRef,
		},
	}
}

// NewMessageDroppedWarning creates a warning for a channel message that lost to an earlier one.
func NewMessageDroppedWarning(channel, messageKey, firstSource, secondSource string) *MergeWarning {
	return &MergeWarning{
		Category:    WarnMessageDropped,
		Path:        fmt.Sprintf("channels.%s.messages.%s", channel, messageKey),
		Message:     fmt.Sprintf("channel '%s' message '%s' from %s dropped (kept %s)", channel, messageKey, secondSource, firstSource),
		FirstSource: firstSource,
		SourceName:  secondSource,
		Severity:    severity.SeverityWarning,
		Context: map[string]any{
			"channel": channel,
			"message": messageKey,
		},
	}
}

func singular(section string) string {
	return strings.TrimSuffix(section, "s")
}

// MergeWarnings is a collection of MergeWarning.
type MergeWarnings []*MergeWarning

// Strings returns the warning messages.
func (ws MergeWarnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		if w == nil {
			continue
		}
		result[i] = w.String()
	}
	return result
}

// ByCategory filters warnings by category.
func (ws MergeWarnings) ByCategory(cat WarningCategory) MergeWarnings {
	var result MergeWarnings
	for _, w := range ws {
		if w.Category == cat {
			result = append(result, w)
		}
	}
	return result
}

// BySeverity filters warnings by severity.
func (ws MergeWarnings) BySeverity(sev severity.Severity) MergeWarnings {
	var result MergeWarnings
	for _, w := range ws {
		if w.Severity == sev {
			result = append(result, w)
		}
	}
	return result
}

// Summary returns a formatted summary of warnings.
func (ws MergeWarnings) Summary() string {
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
