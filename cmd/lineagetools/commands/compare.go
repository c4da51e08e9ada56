package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	lineagetools "github.com/davrax/lineagetools"
	"github.com/davrax/lineagetools/differ"
	"github.com/davrax/lineagetools/internal/cliutil"
)

// CompareFlags contains flags for the compare command
type CompareFlags struct {
	Format           string
	Ignore           string
	TotalPolicy      string
	PreProcess       bool
	PreProcessSource bool
	PreProcessTarget bool
	Changes          bool
	Output           string
}

// SetupCompareFlags creates and configures a FlagSet for the compare command.
// Returns the FlagSet and a CompareFlags struct with bound flag variables.
func SetupCompareFlags() (*flag.FlagSet, *CompareFlags) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	flags := &CompareFlags{}

	defaultIgnore := strings.Join(differ.DefaultIgnoredProperties(), ",")

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Ignore, "ignore", defaultIgnore, "comma-separated property names excluded from comparison")
	fs.StringVar(&flags.TotalPolicy, "total-policy", "source", "total property count policy: source or max")
	fs.BoolVar(&flags.PreProcess, "pre-process", false, "normalize both reports before comparing")
	fs.BoolVar(&flags.PreProcessSource, "pre-process-source", false, "normalize only the source report before comparing")
	fs.BoolVar(&flags.PreProcessTarget, "pre-process-target", false, "normalize only the target report before comparing")
	fs.BoolVar(&flags.Changes, "changes", false, "list every detected change, not just the similarity score")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: lineagetools compare [flags] <source> <target>\n\n")
		cliutil.Writef(fs.Output(), "Compare two lineage reports and report their structural similarity.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable similarity report\n")
		cliutil.Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nTotal Policies:\n")
		cliutil.Writef(fs.Output(), "  source (default)  Count total properties from the source report only\n")
		cliutil.Writef(fs.Output(), "  max               Count the larger of the two reports' property totals\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  lineagetools compare old-report.json new-report.json\n")
		cliutil.Writef(fs.Output(), "  lineagetools compare --pre-process old-report.json new-report.json\n")
		cliutil.Writef(fs.Output(), "  lineagetools compare --changes --format json old.json new.json | jq '.Similarity'\n")
		cliutil.Writef(fs.Output(), "  lineagetools compare --ignore id,entity_value old.json new.json\n")
		cliutil.Writef(fs.Output(), "  lineagetools compare --ignore \"\" old.json new.json  # ignore nothing\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    No differences found (ignored-property changes don't count)\n")
		cliutil.Writef(fs.Output(), "  1    Differences found\n")
	}

	return fs, flags
}

// HandleCompare executes the compare command
func HandleCompare(args []string) error {
	fs, flags := SetupCompareFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("compare command requires exactly two file paths or URLs")
	}

	sourcePath := fs.Arg(0)
	targetPath := fs.Arg(1)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidateTotalPolicy(flags.TotalPolicy); err != nil {
		return err
	}

	diffOpts := []differ.Option{
		differ.WithSourceFilePath(sourcePath),
		differ.WithTargetFilePath(targetPath),
		differ.WithIgnoredProperties(ParseIgnoreList(flags.Ignore)),
		differ.WithTotalPolicy(MapTotalPolicy(flags.TotalPolicy)),
	}
	if flags.PreProcess {
		diffOpts = append(diffOpts, differ.WithNormalizeInputs(true))
	}
	if flags.PreProcessSource {
		diffOpts = append(diffOpts, differ.WithNormalizeSource(true))
	}
	if flags.PreProcessTarget {
		diffOpts = append(diffOpts, differ.WithNormalizeTarget(true))
	}

	startTime := time.Now()
	result, err := differ.DiffWithOptions(diffOpts...)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("comparing reports: %w", err)
	}

	// Handle structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		var payload any = result
		if !flags.Changes {
			payload = result.Similarity
		}
		data, err := MarshalDocument(payload, flags.Format)
		if err != nil {
			return fmt.Errorf("marshaling comparison result: %w", err)
		}
		data = append(data, '\n')
		if err := WriteOutput(data, flags.Output); err != nil {
			return err
		}
		if result.HasDifferences {
			os.Exit(1)
		}
		return nil
	}

	// Text format output
	fmt.Printf("Lineage Report Comparison\n")
	fmt.Printf("=========================\n\n")
	fmt.Printf("lineagetools version: %s\n", lineagetools.Version())
	fmt.Printf("Source: %s\n", sourcePath)
	fmt.Printf("Target: %s\n", targetPath)
	fmt.Printf("Total Time: %v\n\n", totalTime)

	fmt.Printf("Similarity: %.2f%%\n", result.Similarity.SimilarityPercentage)
	fmt.Printf("Matching Properties: %d of %d\n\n",
		result.Similarity.MatchingProperties, result.Similarity.TotalProperties)

	if flags.Changes && len(result.Changes) > 0 {
		fmt.Printf("Changes (%d):\n", len(result.Changes))
		for _, change := range result.Changes {
			fmt.Printf("  %s\n", change.String())
		}
		fmt.Println()
	}

	fmt.Printf("Summary:\n")
	fmt.Printf("  Added: %d\n", result.AddedCount)
	fmt.Printf("  Removed: %d\n", result.RemovedCount)
	fmt.Printf("  Modified: %d\n", result.ModifiedCount)
	if result.IgnoredCount > 0 {
		fmt.Printf("  Ignored: %d\n", result.IgnoredCount)
	}

	if result.HasDifferences {
		fmt.Printf("\n✗ Reports differ\n")
		os.Exit(1)
	}

	fmt.Printf("\n✓ No differences found\n")
	return nil
}
