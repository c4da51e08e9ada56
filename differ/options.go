package differ

import (
	"fmt"

	"github.com/davrax/lineagetools/internal/options"
	"github.com/davrax/lineagetools/normalizer"
	"github.com/davrax/lineagetools/parser"
)

// Option is a function that configures a comparison operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a comparison operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceFilePath *string
	sourceDocument *any
	targetFilePath *string
	targetDocument *any

	// Configuration options
	ignoredProperties []string
	totalPolicy       TotalPolicy
	normalizeSource   bool
	normalizeTarget   bool
	logger            parser.Logger
}

// CompareWithOptions computes the similarity score of two documents using
// functional options.
//
// Example:
//
//	result, err := differ.CompareWithOptions(
//	    differ.WithSourceFilePath("old-report.json"),
//	    differ.WithTargetFilePath("new-report.json"),
//	    differ.WithNormalizeInputs(true),
//	)
func CompareWithOptions(opts ...Option) (*CompareResult, error) {
	d, source, target, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}
	return d.Compare(source, target), nil
}

// DiffWithOptions computes the full per-path classification of two documents
// using functional options.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("old-report.json"),
//	    differ.WithTargetFilePath("new-report.json"),
//	)
//	for _, change := range result.Changes {
//	    fmt.Println(change)
//	}
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	d, source, target, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}
	return d.Diff(source, target), nil
}

// resolveOptions validates configuration, loads any file-based inputs, and
// applies pre-processing.
func resolveOptions(opts ...Option) (*Differ, any, any, error) {
	cfg := &diffConfig{
		ignoredProperties: DefaultIgnoredProperties(),
		totalPolicy:       TotalFromSource,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, nil, nil, fmt.Errorf("differ: invalid options: %w", err)
		}
	}

	if err := options.ValidateSingleInputSource(
		"differ: must specify a source (use WithSourceFilePath or WithSourceDocument)",
		"differ: must specify exactly one source",
		cfg.sourceFilePath != nil, cfg.sourceDocument != nil,
	); err != nil {
		return nil, nil, nil, err
	}
	if err := options.ValidateSingleInputSource(
		"differ: must specify a target (use WithTargetFilePath or WithTargetDocument)",
		"differ: must specify exactly one target",
		cfg.targetFilePath != nil, cfg.targetDocument != nil,
	); err != nil {
		return nil, nil, nil, err
	}

	source, err := cfg.loadInput(cfg.sourceFilePath, cfg.sourceDocument, cfg.normalizeSource)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("differ: failed to load source: %w", err)
	}
	target, err := cfg.loadInput(cfg.targetFilePath, cfg.targetDocument, cfg.normalizeTarget)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("differ: failed to load target: %w", err)
	}

	d := &Differ{
		IgnoredProperties: cfg.ignoredProperties,
		TotalPolicy:       cfg.totalPolicy,
	}
	return d, source, target, nil
}

// loadInput resolves one side: parse when given a path, pass through when
// given a document, normalize when pre-processing is requested.
func (cfg *diffConfig) loadInput(filePath *string, document *any, normalize bool) (any, error) {
	var doc any
	if filePath != nil {
		parseOpts := []parser.Option{parser.WithFilePath(*filePath)}
		if cfg.logger != nil {
			parseOpts = append(parseOpts, parser.WithLogger(cfg.logger))
		}
		result, err := parser.ParseWithOptions(parseOpts...)
		if err != nil {
			return nil, err
		}
		doc = result.Document
	} else {
		doc = *document
	}

	if normalize {
		return normalizer.Normalize(doc), nil
	}
	return doc, nil
}

// WithSourceFilePath specifies a file path or URL as the source document
func WithSourceFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceDocument specifies an already-decoded JSON value as the source document
func WithSourceDocument(doc any) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceDocument = &doc
		return nil
	}
}

// WithTargetFilePath specifies a file path or URL as the target document
func WithTargetFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetDocument specifies an already-decoded JSON value as the target document
func WithTargetDocument(doc any) Option {
	return func(cfg *diffConfig) error {
		cfg.targetDocument = &doc
		return nil
	}
}

// WithIgnoredProperties overrides the set of property names excluded from
// classification and similarity counting.
// Default: DefaultIgnoredProperties()
func WithIgnoredProperties(names []string) Option {
	return func(cfg *diffConfig) error {
		cfg.ignoredProperties = names
		return nil
	}
}

// WithTotalPolicy selects how the total property count is taken.
// Default: TotalFromSource
func WithTotalPolicy(policy TotalPolicy) Option {
	return func(cfg *diffConfig) error {
		if policy != TotalFromSource && policy != TotalMaxOfBoth {
			return fmt.Errorf("unknown total policy %d", policy)
		}
		cfg.totalPolicy = policy
		return nil
	}
}

// WithNormalizeInputs runs both documents through the normalizer before
// comparing (the "pre-process" mode). Use WithNormalizeSource or
// WithNormalizeTarget to pre-process one side only.
// Default: false (documents compared as-is)
func WithNormalizeInputs(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.normalizeSource = enabled
		cfg.normalizeTarget = enabled
		return nil
	}
}

// WithNormalizeSource runs only the source document through the normalizer
// before comparing.
func WithNormalizeSource(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.normalizeSource = enabled
		return nil
	}
}

// WithNormalizeTarget runs only the target document through the normalizer
// before comparing.
func WithNormalizeTarget(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.normalizeTarget = enabled
		return nil
	}
}

// WithLogger sets a structured logger used when loading file-based inputs.
func WithLogger(l parser.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.logger = l
		return nil
	}
}
