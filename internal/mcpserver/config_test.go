package mcpserver

import (
	"os"
	"testing"

	"github.com/davrax/lineagetools/differ"
	"github.com/davrax/lineagetools/parser"
	"github.com/stretchr/testify/assert"
)

// clearLineagetoolsEnv clears all LINEAGETOOLS_* env vars to isolate tests
// from the ambient environment.
func clearLineagetoolsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LINEAGETOOLS_IGNORED_PROPERTIES", "LINEAGETOOLS_TOTAL_POLICY",
		"LINEAGETOOLS_MAX_FILE_SIZE", "LINEAGETOOLS_MAX_INLINE_SIZE",
		"LINEAGETOOLS_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearLineagetoolsEnv(t)

	c := loadConfig()

	assert.Nil(t, c.IgnoredProperties)
	assert.Equal(t, "source", c.TotalPolicy)
	assert.Equal(t, int64(parser.DefaultMaxFileSize), c.MaxFileSize)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)

	assert.Equal(t, differ.DefaultIgnoredProperties(), c.ignoredProperties())
	assert.Equal(t, differ.TotalFromSource, c.totalPolicy())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearLineagetoolsEnv(t)
	t.Setenv("LINEAGETOOLS_IGNORED_PROPERTIES", "id, entity_value")
	t.Setenv("LINEAGETOOLS_TOTAL_POLICY", "max")
	t.Setenv("LINEAGETOOLS_MAX_FILE_SIZE", "1024")
	t.Setenv("LINEAGETOOLS_ALLOW_PRIVATE_IPS", "true")

	c := loadConfig()

	assert.Equal(t, []string{"id", "entity_value"}, c.IgnoredProperties)
	assert.Equal(t, "max", c.TotalPolicy)
	assert.Equal(t, differ.TotalMaxOfBoth, c.totalPolicy())
	assert.Equal(t, int64(1024), c.MaxFileSize)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfig_EmptyIgnoreListIsExplicit(t *testing.T) {
	clearLineagetoolsEnv(t)
	t.Setenv("LINEAGETOOLS_IGNORED_PROPERTIES", "")

	c := loadConfig()

	// Explicitly empty means "ignore nothing", not "use defaults".
	assert.NotNil(t, c.IgnoredProperties)
	assert.Empty(t, c.ignoredProperties())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearLineagetoolsEnv(t)
	t.Setenv("LINEAGETOOLS_TOTAL_POLICY", "average")
	t.Setenv("LINEAGETOOLS_MAX_FILE_SIZE", "not-a-number")
	t.Setenv("LINEAGETOOLS_ALLOW_PRIVATE_IPS", "maybe")

	c := loadConfig()

	assert.Equal(t, "source", c.TotalPolicy)
	assert.Equal(t, int64(parser.DefaultMaxFileSize), c.MaxFileSize)
	assert.False(t, c.AllowPrivateIPs)
}
