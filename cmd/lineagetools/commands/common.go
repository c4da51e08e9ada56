// Package commands provides CLI command handlers for lineagetools.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/davrax/lineagetools/differ"
	"github.com/davrax/lineagetools/internal/cliutil"
	"github.com/davrax/lineagetools/internal/fileutil"
	"github.com/davrax/lineagetools/normalizer"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalDocument marshals a document to bytes in the specified format (json or yaml).
func MarshalDocument(doc any, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	bytes, err := MarshalDocument(data, format)
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	fmt.Println(string(bytes))
	return nil
}

// ValidateTotalPolicy validates the total-policy flag value.
func ValidateTotalPolicy(policy string) error {
	if policy == "" || policy == "source" || policy == "max" {
		return nil
	}
	return fmt.Errorf("commands: invalid total-policy %q: must be one of: source, max", policy)
}

// MapTotalPolicy maps a string policy to the differ enum.
func MapTotalPolicy(policy string) differ.TotalPolicy {
	if policy == "max" {
		return differ.TotalMaxOfBoth
	}
	return differ.TotalFromSource
}

// ValidateDataframeShape validates the shape flag value.
func ValidateDataframeShape(shape string) error {
	if shape == "" || shape == "name-keyed" || shape == "name-keyed-with-name" {
		return nil
	}
	return fmt.Errorf("commands: invalid shape %q: must be one of: name-keyed, name-keyed-with-name", shape)
}

// MapDataframeShape maps a string shape to the normalizer enum.
func MapDataframeShape(shape string) normalizer.DataframeShape {
	if shape == "name-keyed-with-name" {
		return normalizer.ShapeNameKeyedWithName
	}
	return normalizer.ShapeNameKeyed
}

// ParseIgnoreList splits a comma-separated ignore list into property names,
// dropping empty entries. An empty input yields an empty (not nil) list so an
// explicit --ignore "" disables ignoring entirely.
func ParseIgnoreList(value string) []string {
	names := make([]string, 0)
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

var titleCaser = cases.Title(language.English)

// SectionTitle renders a report section key as a display heading
// (e.g. "entire_report" becomes "Entire Report").
func SectionTitle(key string) string {
	return titleCaser.String(strings.NewReplacer("_", " ", "-", " ").Replace(key))
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	// Check if output file would overwrite any input files
	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}

		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}

	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		// File doesn't exist yet — safe to write.
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// WriteOutput writes rendered bytes to the output path, or to stdout when the
// path is empty. Files are written with restrictive permissions.
func WriteOutput(data []byte, outputPath string) error {
	if outputPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}

	cleaned := filepath.Clean(outputPath)
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
