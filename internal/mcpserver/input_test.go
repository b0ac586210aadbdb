package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig swaps the package configuration for the duration of a test.
func withConfig(t *testing.T, mutate func(c *serverConfig)) {
	t.Helper()
	saved := *cfg
	mutate(cfg)
	t.Cleanup(func() { *cfg = saved })
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()
	result, err := specInput{Content: kafkaPartial}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", result.Version)
	require.Len(t, result.Channels, 1)
	assert.Equal(t, "orders", result.Channels[0].Name)
}

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	path := filepath.Join(t.TempDir(), "amqp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(amqpPartial), 0o600))

	result, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Len(t, result.Operations, 2)
	assert.Equal(t, "publishOrder", result.Operations[0].Name)
	assert.Equal(t, "consumeOrder", result.Operations[1].Name)
}

func TestSpecInput_ResolveNoneProvided(t *testing.T) {
	_, err := specInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestSpecInput_ResolveMultipleProvided(t *testing.T) {
	_, err := specInput{File: "foo.yaml", Content: "bar"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	_, err := specInput{File: "/nonexistent/orders.yaml"}.resolve()
	assert.Error(t, err)
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxInlineSize = 16 })

	_, err := specInput{Content: kafkaPartial}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ASYNCTOOLS_MAX_INLINE_SIZE")
}

func TestSpecInput_Label(t *testing.T) {
	assert.Equal(t, "kafka.yaml", specInput{File: "/specs/kafka.yaml"}.label(0))
	assert.Equal(t, "spec[2]", specInput{Content: kafkaPartial}.label(2))
}

func TestSpecCache_ContentHash(t *testing.T) {
	specCache.reset()
	input := specInput{Content: kafkaPartial}

	result1, err := input.resolve()
	require.NoError(t, err)
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
	assert.Equal(t, 1, specCache.size())
}

func TestSpecCache_Disabled(t *testing.T) {
	specCache.reset()
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = false })

	input := specInput{Content: kafkaPartial}
	result1, err := input.resolve()
	require.NoError(t, err)
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, 0, specCache.size())
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(kafkaPartial), 0o600))

	input := specInput{File: path}
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Len(t, result1.Operations, 1)

	require.NoError(t, os.WriteFile(path, []byte(amqpPartial), 0o600))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Len(t, result2.Operations, 2)
}

func TestSpecCache_LRUEviction(t *testing.T) {
	specCache.reset()
	saved := specCache.maxSize
	specCache.maxSize = 3
	t.Cleanup(func() { specCache.maxSize = saved })

	contents := make([]string, 4)
	for i := range contents {
		contents[i] = fmt.Sprintf("asyncapi: 3.0.0\nchannels:\n  channel%d:\n    address: channel%d\n", i, i)
		_, err := specInput{Content: contents[i]}.resolve()
		require.NoError(t, err)
	}

	assert.Equal(t, 3, specCache.size())
	assert.Nil(t, specCache.get(makeCacheKey(specInput{Content: contents[0]})), "expected oldest entry to be evicted")
	assert.NotNil(t, specCache.get(makeCacheKey(specInput{Content: contents[3]})))
}

func TestSpecCache_Sweep(t *testing.T) {
	specCache.reset()
	key := makeCacheKey(specInput{Content: kafkaPartial})
	specCache.put(key, nil, -time.Second)
	require.Equal(t, 1, specCache.size())

	specCache.sweep()
	assert.Equal(t, 0, specCache.size())
}

func TestSpecCache_SweeperStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	specCache.startSweeper(ctx, 10*time.Millisecond)
	cancel()

	assert.Eventually(t, func() bool {
		return !specCache.sweeperStarted.Load()
	}, time.Second, 10*time.Millisecond)
}

func TestMakeCacheKey(t *testing.T) {
	assert.Empty(t, makeCacheKey(specInput{}))
	assert.Empty(t, makeCacheKey(specInput{File: "/nonexistent/orders.yaml"}))
	assert.Equal(t, makeCacheKey(specInput{Content: "a"}), makeCacheKey(specInput{Content: "a"}))
	assert.NotEqual(t, makeCacheKey(specInput{Content: "a"}), makeCacheKey(specInput{Content: "b"}))
}
