package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/davrax/lineagetools/differ"
	"github.com/davrax/lineagetools/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// IgnoredProperties is the default ignore list applied when a tool call
	// does not supply its own. Nil means differ.DefaultIgnoredProperties().
	IgnoredProperties []string

	// TotalPolicy is the default total property count policy ("source" or "max").
	TotalPolicy string

	// MaxFileSize caps file and URL inputs, MaxInlineSize caps inline content.
	MaxFileSize   int64
	MaxInlineSize int64

	// AllowPrivateIPs disables SSRF protection for URL inputs.
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from LINEAGETOOLS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		IgnoredProperties: envList("LINEAGETOOLS_IGNORED_PROPERTIES"),
		TotalPolicy:       envTotalPolicy("LINEAGETOOLS_TOTAL_POLICY"),
		MaxFileSize:       envSize("LINEAGETOOLS_MAX_FILE_SIZE", parser.DefaultMaxFileSize),
		MaxInlineSize:     envSize("LINEAGETOOLS_MAX_INLINE_SIZE", 10*1024*1024),
		AllowPrivateIPs:   envBool("LINEAGETOOLS_ALLOW_PRIVATE_IPS", false),
	}
}

// ignoredProperties resolves the effective default ignore list.
func (c *serverConfig) ignoredProperties() []string {
	if c.IgnoredProperties == nil {
		return differ.DefaultIgnoredProperties()
	}
	return c.IgnoredProperties
}

// totalPolicy resolves the configured policy to the differ enum.
func (c *serverConfig) totalPolicy() differ.TotalPolicy {
	if c.TotalPolicy == "max" {
		return differ.TotalMaxOfBoth
	}
	return differ.TotalFromSource
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envSize(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// envList parses a comma-separated list. Unset returns nil (meaning "use the
// built-in default"); an explicitly empty value returns an empty list.
func envList(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	names := make([]string, 0)
	for _, name := range strings.Split(v, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func envTotalPolicy(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return "source"
	}
	if v != "source" && v != "max" {
		slog.Warn("invalid total policy env var, using default", "key", key, "value", v, "default", "source")
		return "source"
	}
	return v
}
