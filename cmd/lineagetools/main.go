package main

import (
	"context"
	"fmt"
	"os"

	lineagetools "github.com/davrax/lineagetools"
	"github.com/davrax/lineagetools/cmd/lineagetools/commands"
	"github.com/davrax/lineagetools/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("lineagetools v%s\n", lineagetools.Version())
	case "build-info":
		fmt.Println(lineagetools.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "normalize":
		if err := commands.HandleNormalize(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compare":
		if err := commands.HandleCompare(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := mcpserver.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

var knownCommands = []string{"normalize", "compare", "mcp", "version", "build-info", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or an empty string when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDistance := 3
	for _, candidate := range knownCommands {
		if d := editDistance(input, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func printUsage() {
	fmt.Println(`lineagetools - Lineage Report Tools

Usage:
  lineagetools <command> [options]

Commands:
  normalize   Normalize a lineage report into its canonical merged form
  compare     Compare two lineage reports and report their similarity
  mcp         Run the MCP server over stdio
  version     Show version information
  build-info  Show full build metadata
  help        Show this help message

Examples:
  lineagetools normalize report.json
  lineagetools normalize --format yaml https://example.com/report.json
  lineagetools compare old-report.json new-report.json
  lineagetools compare --pre-process --changes old-report.json new-report.json

Run 'lineagetools <command> --help' for more information on a command.`)
}
