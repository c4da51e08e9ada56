package mcpserver

import (
	"fmt"
	"strings"

	"github.com/davrax/lineagetools/parser"
)

// reportInput represents the three ways a lineage report can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type reportInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a lineage report file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a lineage report from"`
	Content string `json:"content,omitempty" jsonschema:"Inline report content (JSON or YAML)"`
}

// resolve parses the report from whichever input was provided.
func (r reportInput) resolve() (*parser.ParseResult, error) {
	count := 0
	if r.File != "" {
		count++
	}
	if r.URL != "" {
		count++
	}
	if r.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	// Enforce inline content size limit.
	if r.Content != "" && int64(len(r.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set LINEAGETOOLS_MAX_INLINE_SIZE to increase",
			len(r.Content), cfg.MaxInlineSize)
	}

	opts := []parser.Option{parser.WithMaxFileSize(cfg.MaxFileSize)}
	switch {
	case r.File != "":
		opts = append(opts, parser.WithFilePath(r.File))
	case r.URL != "":
		opts = append(opts, parser.WithFilePath(r.URL))
		// Inject SSRF-safe HTTP client for URL resolution unless private IPs
		// are allowed.
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(newSafeHTTPClient()))
		}
	case r.Content != "":
		opts = append(opts, parser.WithReader(strings.NewReader(r.Content)))
	}

	return parser.ParseWithOptions(opts...)
}
