package assembler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/internal/testutil"
)

func sampleDocument() *asyncapi.Document {
	doc := testutil.NewPartialDocument(
		[]*asyncapi.Channel{testutil.NewChannel("orders", "OrderCreated")},
		[]*asyncapi.Operation{testutil.NewOperation("sendOrder", asyncapi.ActionSend, "orders", "OrderCreated")},
	)
	doc.Info = &asyncapi.Info{Title: "Orders", Version: "1.0.0"}
	doc.Extra = map[string]any{"x-team": "checkout"}
	return doc
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	data, err := Marshal(sampleDocument(), asyncapi.SourceFormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "x-team: checkout")

	res, err := asyncapi.ParseWithOptions(asyncapi.WithBytes(data))
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", res.Version)
	require.Len(t, res.Operations, 1)
	assert.Equal(t, asyncapi.ActionSend, res.Operations[0].Operation.Action)
	assert.Equal(t, "checkout", res.Document.Extra["x-team"])
}

func TestMarshalJSONKeepsExtensions(t *testing.T) {
	data, err := Marshal(sampleDocument(), asyncapi.SourceFormatJSON)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, "checkout", generic["x-team"])
	assert.Equal(t, "3.0.0", generic["asyncapi"])
	assert.Contains(t, generic["channels"], "orders")
}

func TestMarshalJSONNonStringKeys(t *testing.T) {
	doc := sampleDocument()
	doc.Channels["orders"].Messages["OrderCreated"].Payload = map[string]any{
		"x-codes": map[int]string{200: "ok", 404: "missing"},
		"examples": []any{map[bool]string{true: "yes"}},
	}

	yamlData, err := Marshal(doc, asyncapi.SourceFormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "200: ok")

	data, err := Marshal(doc, asyncapi.SourceFormatJSON)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	payload := generic["channels"].(map[string]any)["orders"].(map[string]any)["messages"].(map[string]any)["OrderCreated"].(map[string]any)["payload"].(map[string]any)
	assert.Equal(t, map[string]any{"200": "ok", "404": "missing"}, payload["x-codes"])
	assert.Equal(t, []any{map[string]any{"true": "yes"}}, payload["examples"])
}

func TestMarshalJSONParsedIntegerKeys(t *testing.T) {
	res, err := asyncapi.ParseWithOptions(asyncapi.WithBytes([]byte(`asyncapi: 3.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        payload:
          x-codes:
            200: ok
`)))
	require.NoError(t, err)
	doc := testutil.NewPartialDocument([]*asyncapi.Channel{res.Channels[0].Channel}, nil)

	data, err := Marshal(doc, asyncapi.SourceFormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"200": "ok"`)
}

func TestMarshalDeterministic(t *testing.T) {
	a, err := Marshal(sampleDocument(), asyncapi.SourceFormatJSON)
	require.NoError(t, err)
	b, err := Marshal(sampleDocument(), asyncapi.SourceFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMarshalErrors(t *testing.T) {
	_, err := Marshal(nil, asyncapi.SourceFormatYAML)
	assert.Error(t, err)

	_, err = Marshal(sampleDocument(), "xml")
	assert.Error(t, err)
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("format from extension", func(t *testing.T) {
		path := filepath.Join(dir, "asyncapi.json")
		require.NoError(t, WriteDocument(sampleDocument(), path, asyncapi.SourceFormatUnknown))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, json.Valid(data))
	})

	t.Run("tightens existing permissions", func(t *testing.T) {
		path := filepath.Join(dir, "asyncapi.yaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
		require.NoError(t, WriteDocument(sampleDocument(), path, asyncapi.SourceFormatYAML))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("unwritable path", func(t *testing.T) {
		err := WriteDocument(sampleDocument(), filepath.Join(dir, "missing", "out.yaml"), asyncapi.SourceFormatYAML)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assembler: failed to write output file")
	})
}
