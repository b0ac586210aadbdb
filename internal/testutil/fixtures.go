// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/asyncapi"
)

// NewMessage creates a JSON message whose payload references a schema of the same name.
func NewMessage(name string) *asyncapi.Message {
	return &asyncapi.Message{
		Name:        name,
		ContentType: "application/json",
		Payload:     map[string]any{"$ref": "#/components/schemas/" + name},
	}
}

// NewChannel creates a channel addressed by name with one message per key.
func NewChannel(name string, messageKeys ...string) *asyncapi.Channel {
	ch := &asyncapi.Channel{Name: name, Address: name}
	if len(messageKeys) > 0 {
		ch.Messages = make(map[string]*asyncapi.Message, len(messageKeys))
		for _, key := range messageKeys {
			ch.Messages[key] = NewMessage(key)
		}
	}
	return ch
}

// NewOperation creates an operation on channel referencing the channel's
// messages named by messageKeys.
func NewOperation(name string, action asyncapi.Action, channel string, messageKeys ...string) *asyncapi.Operation {
	op := &asyncapi.Operation{
		Name:    name,
		Action:  action,
		Channel: asyncapi.NewChannelReference(channel),
	}
	for _, key := range messageKeys {
		op.Messages = append(op.Messages, asyncapi.NewChannelMessageReference(channel, key))
	}
	return op
}

// ChannelEntries pairs each channel with its Name.
func ChannelEntries(channels ...*asyncapi.Channel) []asyncapi.ChannelEntry {
	entries := make([]asyncapi.ChannelEntry, len(channels))
	for i, ch := range channels {
		entries[i] = asyncapi.ChannelEntry{Name: ch.Name, Channel: ch}
	}
	return entries
}

// OperationEntries pairs each operation with its Name.
func OperationEntries(operations ...*asyncapi.Operation) []asyncapi.OperationEntry {
	entries := make([]asyncapi.OperationEntry, len(operations))
	for i, op := range operations {
		entries[i] = asyncapi.OperationEntry{Name: op.Name, Operation: op}
	}
	return entries
}

// NewPartialDocument creates a partial description holding the given channels
// and operations, keyed by their names.
func NewPartialDocument(channels []*asyncapi.Channel, operations []*asyncapi.Operation) *asyncapi.Document {
	doc := &asyncapi.Document{AsyncAPI: asyncapi.Version}
	if len(channels) > 0 {
		doc.Channels = make(map[string]*asyncapi.Channel, len(channels))
		for _, ch := range channels {
			doc.Channels[ch.Name] = ch
		}
	}
	if len(operations) > 0 {
		doc.Operations = make(map[string]*asyncapi.Operation, len(operations))
		for _, op := range operations {
			doc.Operations[op.Name] = op
		}
	}
	return doc
}

// WriteTempFile writes content to name inside a fresh temporary directory.
// The file is removed when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "partial.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "partial.json", string(data))
}
