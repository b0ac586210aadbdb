package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/internal/testutil"
)

func TestSetupMergeFlags(t *testing.T) {
	fs, flags := SetupMergeFlags()

	assert.Empty(t, flags.Output)
	assert.False(t, flags.NoConflictWarnings)
	assert.False(t, flags.Quiet)

	args := []string{"-o", "out.yaml", "--format", "json", "--title", "Orders", "--version", "2.0.0",
		"--no-conflict-warnings", "-q", "--verbose", "a.yaml", "b.yaml"}
	require.NoError(t, fs.Parse(args))

	assert.Equal(t, "out.yaml", flags.Output)
	assert.Equal(t, "json", flags.Format)
	assert.Equal(t, "Orders", flags.Title)
	assert.Equal(t, "2.0.0", flags.Version)
	assert.True(t, flags.NoConflictWarnings)
	assert.True(t, flags.Quiet)
	assert.True(t, flags.Verbose)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, fs.Args())
}

func TestHandleMerge_NoFiles(t *testing.T) {
	err := HandleMerge([]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 input file")
}

func TestHandleMerge_Help(t *testing.T) {
	assert.NoError(t, HandleMerge([]string{"--help"}))
}

func TestHandleMerge_InvalidFormat(t *testing.T) {
	err := HandleMerge([]string{"--format", "xml", "a.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestHandleMerge_MissingFile(t *testing.T) {
	err := HandleMerge([]string{"-q", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merging descriptions")
}

func TestHandleMerge_WritesYAML(t *testing.T) {
	kafka := testutil.WriteTempFile(t, "kafka.yaml", kafkaPartial)
	amqp := testutil.WriteTempFile(t, "amqp.yaml", amqpPartial)
	out := filepath.Join(t.TempDir(), "asyncapi.yaml")

	require.NoError(t, HandleMerge([]string{"-q", "-o", out, "--title", "Orders", kafka, amqp}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "3.0.0", doc["asyncapi"])
	assert.Equal(t, "Orders", doc["info"].(map[string]any)["title"])

	orders := doc["channels"].(map[string]any)["orders"].(map[string]any)
	assert.Equal(t, "Order events on Kafka", orders["description"])
	assert.Len(t, orders["messages"], 2)
	assert.Len(t, doc["operations"], 2)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestHandleMerge_WritesJSONByExtension(t *testing.T) {
	kafka := testutil.WriteTempFile(t, "kafka.yaml", kafkaPartial)
	out := filepath.Join(t.TempDir(), "asyncapi.json")

	require.NoError(t, HandleMerge([]string{"-q", "-o", out, kafka}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "AsyncAPI", doc["info"].(map[string]any)["title"])
}

func TestHandleMerge_RefusesToOverwriteInput(t *testing.T) {
	kafka := testutil.WriteTempFile(t, "kafka.yaml", kafkaPartial)

	err := HandleMerge([]string{"-q", "-o", kafka, kafka})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would overwrite input file")
}

func TestMergeAssembleOptions(t *testing.T) {
	assert.Len(t, mergeAssembleOptions(&MergeFlags{}, nil), 1)
	assert.Len(t, mergeAssembleOptions(&MergeFlags{Version: "2.0.0"}, nil), 2)
	assert.Len(t, mergeAssembleOptions(&MergeFlags{Title: "Orders", ID: "urn:orders"}, nil), 3)
}
