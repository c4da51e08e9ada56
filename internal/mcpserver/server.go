// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes lineagetools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	lineagetools "github.com/davrax/lineagetools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `lineagetools MCP server — normalizes and compares data-lineage report documents.

Configuration: All defaults are configurable via LINEAGETOOLS_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- LINEAGETOOLS_IGNORED_PROPERTIES — comma-separated property names excluded from comparison (default: id,source_entity,target_entity,dropped_columns,entity_value,operation_description)
- LINEAGETOOLS_TOTAL_POLICY (default: source) — total property count policy: source or max
- LINEAGETOOLS_MAX_FILE_SIZE (default: 52428800) — maximum file/URL input size in bytes
- LINEAGETOOLS_MAX_INLINE_SIZE (default: 10485760) — maximum inline content size in bytes

Reports can be provided by file path, URL, or inline JSON/YAML content. URL inputs are fetched with SSRF protection (private/loopback IPs blocked) unless LINEAGETOOLS_ALLOW_PRIVATE_IPS is set.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "lineagetools", Version: lineagetools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize",
		Description: "Normalize a lineage report into its canonical merged form: graphs are flattened into name-keyed dataframe and operation mappings, and job collections are walked recursively. Use summary_only=true to get per-section entity/operation counts without the full document.",
	}, handleNormalize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Compare two lineage reports and report their structural similarity as a percentage, with per-path changes (added/removed/modified). Use pre_process=true to normalize both reports first so node-id differences don't count. Ignored property defaults are configurable via LINEAGETOOLS_IGNORED_PROPERTIES; override per call with ignored_properties.",
	}, handleCompare)
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
