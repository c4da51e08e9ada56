package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/davrax/lineagetools"
)

// DefaultMaxFileSize is the maximum document size accepted when no explicit
// limit is configured (50 MiB).
const DefaultMaxFileSize int64 = 50 * 1024 * 1024

// Parser handles lineage report document loading and decoding
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "lineagetools/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	// When set, InsecureSkipVerify is ignored (configure TLS on your client's transport).
	HTTPClient *http.Client
	// InsecureSkipVerify disables TLS certificate verification for HTTPS fetches
	// Use with caution - only enable for testing or internal servers with self-signed certs
	InsecureSkipVerify bool
	// MaxFileSize is the maximum document size in bytes.
	// Default: 50MB
	MaxFileSize int64
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: lineagetools.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// maxFileSize returns the configured size limit, or the default when unset.
func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the decoded lineage report document and metadata.
//
// Callers should treat ParseResult as read-only after parsing. The Document
// value may be shared between a normalization and a comparison of the same
// report; both of those operations are pure and never mutate it.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Document is the decoded JSON value: map[string]any, []any, float64,
	// string, bool, or nil. Numbers are always float64 regardless of the
	// source format.
	Document any
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Parse parses a lineage report document from a file path or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
// For local files, the file is read and parsed.
func (p *Parser) Parse(docPath string) (*ParseResult, error) {
	var data []byte
	var err error
	var format SourceFormat
	var loadTime time.Duration

	if isURL(docPath) {
		var contentType string
		loadStart := time.Now()
		data, contentType, err = p.fetchURL(docPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(docPath, contentType)
	} else {
		loadStart := time.Now()
		data, err = os.ReadFile(docPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		if int64(len(data)) > p.maxFileSize() {
			return nil, fmt.Errorf("parser: document size %s exceeds limit %s",
				FormatBytes(int64(len(data))), FormatBytes(p.maxFileSize()))
		}
		format = detectFormatFromPath(docPath)
	}

	res, err := p.parseBytes(data, format)
	if err != nil {
		return nil, err
	}

	res.SourcePath = docPath
	res.LoadTime = loadTime
	res.SourceSize = int64(len(data))

	p.log().Debug("parsed document",
		"path", docPath, "format", res.SourceFormat, "bytes", res.SourceSize)

	return res, nil
}

// ParseReader parses a lineage report document from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, fmt.Errorf("parser: document size exceeds limit %s", FormatBytes(p.maxFileSize()))
	}
	res, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseReader.json"
	} else {
		res.SourcePath = "ParseReader.yaml"
	}
	return res, nil
}

// ParseBytes parses a lineage report document from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, detectFormatFromContent(data))
	if err != nil {
		return nil, err
	}
	res.SourceSize = int64(len(data))
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseBytes.json"
	} else {
		res.SourcePath = "ParseBytes.yaml"
	}
	return res, nil
}

// parseBytes decodes data in the given format (detecting from content when
// unknown) and normalizes the result to the canonical JSON value shape.
func (p *Parser) parseBytes(data []byte, format SourceFormat) (*ParseResult, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	result := &ParseResult{SourceFormat: format}

	var doc any
	switch format {
	case SourceFormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parser: failed to parse JSON: %w", err)
		}
	default:
		// YAML also accepts JSON, so this path covers unknown content too.
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parser: failed to parse YAML/JSON: %w", err)
		}
		result.SourceFormat = SourceFormatYAML
	}

	result.Document = normalizeValue(doc)
	return result, nil
}

// normalizeValue converts a decoded value into the canonical JSON value shape:
// map[string]any mappings, []any sequences, and float64 numbers. YAML decodes
// integers as int and non-string mapping keys as map[any]any; both are folded
// here so that documents compare identically regardless of source format.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = normalizeValue(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[fmt.Sprintf("%v", k)] = normalizeValue(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalizeValue(child)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}
