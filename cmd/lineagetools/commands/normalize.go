package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	lineagetools "github.com/davrax/lineagetools"
	"github.com/davrax/lineagetools/internal/cliutil"
	"github.com/davrax/lineagetools/internal/maputil"
	"github.com/davrax/lineagetools/normalizer"
	"github.com/davrax/lineagetools/parser"
)

// NormalizeFlags contains flags for the normalize command
type NormalizeFlags struct {
	Format string
	Output string
	Shape  string
	Quiet  bool
}

// SetupNormalizeFlags creates and configures a FlagSet for the normalize command.
// Returns the FlagSet and a NormalizeFlags struct with bound flag variables.
func SetupNormalizeFlags() (*flag.FlagSet, *NormalizeFlags) {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	flags := &NormalizeFlags{}

	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Shape, "shape", "name-keyed", "dataframe shape: name-keyed or name-keyed-with-name")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress the summary header on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "suppress the summary header on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: lineagetools normalize [flags] <file|url>\n\n")
		cliutil.Writef(fs.Output(), "Normalize a lineage report into its canonical merged form.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  json (default)  Full normalized document as JSON\n")
		cliutil.Writef(fs.Output(), "  yaml            Full normalized document as YAML\n")
		cliutil.Writef(fs.Output(), "  text            Per-section summary (entity and operation counts)\n")
		cliutil.Writef(fs.Output(), "\nDataframe Shapes:\n")
		cliutil.Writef(fs.Output(), "  name-keyed (default)    Entries keyed by node name, name field dropped\n")
		cliutil.Writef(fs.Output(), "  name-keyed-with-name    Entries keyed by node name, name field kept\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  lineagetools normalize report.json\n")
		cliutil.Writef(fs.Output(), "  lineagetools normalize --format yaml report.json\n")
		cliutil.Writef(fs.Output(), "  lineagetools normalize -o normalized.json https://example.com/report.json\n")
	}

	return fs, flags
}

// HandleNormalize executes the normalize command
func HandleNormalize(args []string) error {
	fs, flags := SetupNormalizeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("normalize command requires exactly one file path or URL")
	}

	reportPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidateDataframeShape(flags.Shape); err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{reportPath}); err != nil {
			return err
		}
	}

	result, err := parser.ParseWithOptions(parser.WithFilePath(reportPath))
	if err != nil {
		return fmt.Errorf("parsing report: %w", err)
	}

	normalized := normalizer.Normalize(result.Document,
		normalizer.WithDataframeShape(MapDataframeShape(flags.Shape)))

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "lineagetools version: %s\n", lineagetools.Version())
		cliutil.Writef(os.Stderr, "Report: %s\n", reportPath)
		cliutil.Writef(os.Stderr, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
		cliutil.Writef(os.Stderr, "Load Time: %v\n", result.LoadTime)
	}

	if flags.Format == FormatText {
		renderNormalizeSummary(os.Stdout, normalized)
		return nil
	}

	data, err := MarshalDocument(normalized, flags.Format)
	if err != nil {
		return fmt.Errorf("marshaling normalized report: %w", err)
	}
	data = append(data, '\n')
	return WriteOutput(data, flags.Output)
}

// renderNormalizeSummary prints a per-section overview of the normalized
// document instead of the full payload.
func renderNormalizeSummary(w *os.File, normalized map[string]any) {
	for _, key := range maputil.SortedKeys(normalized) {
		section, ok := normalized[key].(map[string]any)
		if !ok {
			continue
		}
		cliutil.Writef(w, "%s:\n", SectionTitle(key))
		if dataframe, ok := section["dataframe"].(map[string]any); ok {
			cliutil.Writef(w, "  Entities: %d\n", len(dataframe))
		}
		if operations, ok := section["operation"].(map[string]any); ok {
			cliutil.Writef(w, "  Operations: %d\n", len(operations))
		}
		if _, isMerged := section["dataframe"]; !isMerged {
			cliutil.Writef(w, "  Jobs: %d\n", len(section))
		}
	}
}
