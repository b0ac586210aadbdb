package assembler

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/internal/fileutil"
)

// Marshal serializes doc as YAML or JSON. Map keys are emitted in sorted order.
//
// JSON output goes through the YAML encoding first so that specification
// extensions (Extra fields) are kept inline in both formats.
func Marshal(doc *asyncapi.Document, format asyncapi.SourceFormat) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("assembler: document is nil")
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("assembler: failed to marshal document: %w", err)
	}

	switch format {
	case asyncapi.SourceFormatYAML, asyncapi.SourceFormatUnknown, "":
		return data, nil
	case asyncapi.SourceFormatJSON:
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("assembler: failed to re-read document: %w", err)
		}
		out, err := json.MarshalIndent(stringKeys(generic), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("assembler: failed to marshal JSON: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("assembler: unsupported format %q", format)
	}
}

// stringKeys converts YAML mappings with non-string keys (e.g. 200: ok in a
// payload) into JSON objects keyed by the key's text.
func stringKeys(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range node {
			node[k] = stringKeys(val)
		}
		return node
	case []any:
		for i, val := range node {
			node[i] = stringKeys(val)
		}
		return node
	default:
		return v
	}
}

// WriteDocument marshals doc and writes it to path with owner-only permissions.
// When format is unknown it is taken from the file extension, defaulting to YAML.
func WriteDocument(doc *asyncapi.Document, path string, format asyncapi.SourceFormat) error {
	if format == "" || format == asyncapi.SourceFormatUnknown {
		format = asyncapi.DetectFormatFromPath(path)
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("assembler: failed to write output file: %w", err)
	}
	// The file may have existed with wider permissions.
	if err := os.Chmod(path, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("assembler: failed to set output file permissions: %w", err)
	}
	return nil
}
