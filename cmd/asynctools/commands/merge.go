package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/asynctools/assembler"
	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/internal/cliutil"
	"github.com/erraggy/asynctools/merger"
)

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	Output             string
	Format             string
	Title              string
	Version            string
	ID                 string
	NoConflictWarnings bool
	Quiet              bool
	Verbose            bool
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
// Returns the FlagSet and a MergeFlags struct with bound flag variables.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: yaml or json (default: from output extension, else yaml)")
	fs.StringVar(&flags.Title, "title", "", "document title (default: "+assembler.DefaultTitle+")")
	fs.StringVar(&flags.Version, "version", "", "document version (default: "+assembler.DefaultVersion+")")
	fs.StringVar(&flags.ID, "id", "", "application identifier URI")
	fs.BoolVar(&flags.NoConflictWarnings, "no-conflict-warnings", false, "don't report values discarded by the first-wins rule")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log merge decisions to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asynctools merge [flags] <file1> [file2...]\n\n")
		cliutil.Writef(fs.Output(), "Merge partial AsyncAPI 3.0 descriptions into a single document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nMerge Rules:\n")
		cliutil.Writef(fs.Output(), "  Files are merged in the order given. For channels and operations sharing a name:\n")
		cliutil.Writef(fs.Output(), "  - The first file supplies address, title, description, action and bindings\n")
		cliutil.Writef(fs.Output(), "  - Channel messages are unioned by key, the first message per key is kept\n")
		cliutil.Writef(fs.Output(), "  - Operation message references are unioned, duplicates removed\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  asynctools merge -o asyncapi.yaml kafka.yaml amqp.yaml\n")
		cliutil.Writef(fs.Output(), "  asynctools merge --title Orders --version 1.2.0 --format json partials/*.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - When -o is specified, file is written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("merge command requires at least 1 input file")
	}
	filePaths := fs.Args()

	format, err := ResolveOutputFormat(flags.Format, flags.Output)
	if err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, filePaths); err != nil {
			return err
		}
	}

	logger := NewLogger(flags.Verbose)

	startTime := time.Now()
	result, err := merger.MergeWithOptions(
		merger.WithFilePaths(filePaths...),
		merger.WithConflictWarnings(!flags.NoConflictWarnings),
		merger.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("merging descriptions: %w", err)
	}

	build, err := assembler.Assemble(result, mergeAssembleOptions(flags, logger)...)
	if err != nil {
		return fmt.Errorf("assembling document: %w", err)
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		OutputHeader("AsyncAPI Merger")
		cliutil.Writef(os.Stderr, "Merged %d files (%d entries)\n", result.SourceCount, result.EntryCount)
		if flags.Output != "" {
			cliutil.Writef(os.Stderr, "Output: %s\n", flags.Output)
		} else {
			cliutil.Writef(os.Stderr, "Output: <stdout>\n")
		}
		outputStats(build, totalTime)
		cliutil.WriteList(os.Stderr, "Merge warnings", result.Warnings.Strings())
		cliutil.WriteList(os.Stderr, "Reference warnings", build.Warnings.Strings())
	}

	if flags.Output != "" {
		if err := assembler.WriteDocument(build.Document, flags.Output, format); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}

	data, err := assembler.Marshal(build.Document, format)
	if err != nil {
		return fmt.Errorf("marshaling merged document: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing merged document to stdout: %w", err)
	}
	return nil
}

func mergeAssembleOptions(flags *MergeFlags, logger asyncapi.Logger) []assembler.Option {
	opts := []assembler.Option{assembler.WithLogger(logger)}
	if flags.Title != "" || flags.Version != "" {
		info := &asyncapi.Info{Title: flags.Title, Version: flags.Version}
		if info.Title == "" {
			info.Title = assembler.DefaultTitle
		}
		if info.Version == "" {
			info.Version = assembler.DefaultVersion
		}
		opts = append(opts, assembler.WithInfo(info))
	}
	if flags.ID != "" {
		opts = append(opts, assembler.WithID(flags.ID))
	}
	return opts
}

// outputStats writes document statistics to stderr.
func outputStats(build *assembler.BuildResult, elapsed time.Duration) {
	cliutil.Writef(os.Stderr, "AsyncAPI Version: %s\n", build.Document.AsyncAPI)
	cliutil.Writef(os.Stderr, "Build ID: %s\n", build.BuildID)
	cliutil.Writef(os.Stderr, "Channels: %d\n", build.Stats.Channels)
	cliutil.Writef(os.Stderr, "Operations: %d\n", build.Stats.Operations)
	cliutil.Writef(os.Stderr, "Messages: %d\n", build.Stats.Messages)
	if build.Stats.Servers > 0 {
		cliutil.Writef(os.Stderr, "Servers: %d\n", build.Stats.Servers)
	}
	cliutil.Writef(os.Stderr, "Total Time: %v\n\n", elapsed)
}
