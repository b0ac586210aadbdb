package asyncapi

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat is the serialization format of a description.
type SourceFormat string

const (
	// SourceFormatYAML indicates YAML input or output
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates JSON input or output
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseSourceFormat converts a user supplied format name ("yaml", "yml", "json")
// into a SourceFormat.
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return SourceFormatYAML, nil
	case "json":
		return SourceFormatJSON, nil
	default:
		return SourceFormatUnknown, fmt.Errorf("asyncapi: unsupported format %q (use yaml or json)", s)
	}
}

// FormatBytes formats a byte count using binary units (KiB, MiB, ...).
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// DetectFormatFromPath detects the format from a file extension.
func DetectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats input starting with '{' or '[' as JSON and
// anything else non-empty as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
