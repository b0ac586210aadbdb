package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/asynctools"
	"github.com/erraggy/asynctools/cmd/asynctools/commands"
	"github.com/erraggy/asynctools/internal/cliutil"
	"github.com/erraggy/asynctools/internal/mcpserver"
)

// commandNames lists the subcommands offered as suggestions for typos.
var commandNames = []string{"merge", "scan", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("asynctools %s\n", asynctools.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "merge":
		err = commands.HandleMerge(os.Args[2:])
	case "scan":
		err = commands.HandleScan(os.Args[2:])
	case "mcp":
		err = runMCP()
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

func printUsage() {
	cliutil.Writef(os.Stderr, `asynctools - AsyncAPI document builder

Usage:
  asynctools <command> [flags] [args]

Commands:
  merge      Merge partial AsyncAPI descriptions into one document
  scan       Run the scanners configured in asynctools.toml and write the document
  mcp        Run the MCP server over stdio
  version    Show version information
  help       Show this help message

Run 'asynctools <command> --help' for command flags.
`)
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
