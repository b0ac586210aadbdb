// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes asynctools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"strconv"

	"github.com/erraggy/asynctools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `asynctools MCP server. Parses partial AsyncAPI 3.0 descriptions and merges them into one document.

Merge rules: entries sharing a channel or operation name are folded left to right. The first entry keeps its scalar fields, channel messages are unioned by key (first wins), and operation message references are unioned in first-seen order. Pass specs in precedence order.

Configuration: defaults are configurable via ASYNCTOOLS_* environment variables set in your MCP client config.

Key settings:
- ASYNCTOOLS_MAX_MERGE_SPECS (default: 50) - maximum specs per merge call
- ASYNCTOOLS_MAX_INLINE_SIZE (default: 10485760) - maximum inline content size in bytes
- ASYNCTOOLS_CONFLICT_WARNINGS (default: true) - report values discarded by the first-wins rule
- ASYNCTOOLS_CACHE_ENABLED (default: true) - cache parsed specs per session
- ASYNCTOOLS_CACHE_TTL (default: 15m) - cache entry lifetime`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "asynctools", Version: asynctools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse a partial AsyncAPI 3.0 description. Returns the channel and operation names in document order with counts, the action of each operation, and any parse warnings.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge partial AsyncAPI 3.0 descriptions into a single document. Specs are folded in the order given: the first spec defining a channel or operation supplies its metadata, channel messages are unioned by key, and operation message references are deduplicated. Returns counts, conflict warnings, unresolved reference warnings and the assembled document. Use output to write to a file instead of returning inline. Conflict warnings default is configurable via ASYNCTOOLS_CONFLICT_WARNINGS.",
	}, handleMerge)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
