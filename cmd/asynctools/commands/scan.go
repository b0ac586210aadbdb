package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/erraggy/asynctools/assembler"
	"github.com/erraggy/asynctools/internal/cliutil"
	"github.com/erraggy/asynctools/internal/config"
	"github.com/erraggy/asynctools/merger"
	"github.com/erraggy/asynctools/scanner"
)

// ScanFlags contains flags for the scan command
type ScanFlags struct {
	Output  string
	Format  string
	Quiet   bool
	Verbose bool
}

// SetupScanFlags creates and configures a FlagSet for the scan command.
// Returns the FlagSet and a ScanFlags struct with bound flag variables.
func SetupScanFlags() (*flag.FlagSet, *ScanFlags) {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	flags := &ScanFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path, '-' for stdout (default: output.path from the config file)")
	fs.StringVar(&flags.Output, "output", "", "output file path, '-' for stdout (default: output.path from the config file)")
	fs.StringVar(&flags.Format, "format", "", "output format: yaml or json (default: output.format from the config file)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log scanner and merge decisions to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asynctools scan [flags] [config]\n\n")
		cliutil.Writef(fs.Output(), "Run the scanners listed in a project file, merge their results and write\n")
		cliutil.Writef(fs.Output(), "the AsyncAPI document. The config defaults to %s.\n\n", config.DefaultFileName)
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nScanner Types:\n")
		cliutil.Writef(fs.Output(), "  documents     Read partial AsyncAPI files listed under files\n")
		cliutil.Writef(fs.Output(), "  annotations   Read %s directives from Go packages\n", scanner.DirectivePrefix)
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  asynctools scan\n")
		cliutil.Writef(fs.Output(), "  asynctools scan -o - --format json services/orders/asynctools.toml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Scanners run concurrently; their results are merged in config order\n")
		cliutil.Writef(fs.Output(), "  - Relative paths in the config are resolved against the config file directory\n")
	}

	return fs, flags
}

// HandleScan executes the scan command
func HandleScan(args []string) error {
	fs, flags := SetupScanFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("scan command accepts at most 1 config file")
	}

	configPath := config.DefaultFileName
	if fs.NArg() == 1 {
		configPath = fs.Arg(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	outputPath := flags.Output
	if outputPath == "" && cfg.Output.Path != StdoutPath {
		outputPath = cfg.Resolve(cfg.Output.Path)
	} else if outputPath == "" {
		outputPath = StdoutPath
	}
	toStdout := outputPath == StdoutPath

	// --format, then the -o extension, then the config file.
	format := cfg.OutputFormat()
	if flags.Format != "" || (flags.Output != "" && !toStdout) {
		if format, err = ResolveOutputFormat(flags.Format, flags.Output); err != nil {
			return err
		}
	}
	if !toStdout {
		if err := ValidateOutputPath(outputPath, []string{configPath}); err != nil {
			return err
		}
	}

	logger := NewLogger(flags.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	sources, err := scanner.Run(ctx, cfg.BuildScanners(logger)...)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	result, err := merger.MergeWithOptions(
		merger.WithSources(sources...),
		merger.WithConflictWarnings(cfg.ConflictWarnings),
		merger.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("merging scanner results: %w", err)
	}

	build, err := assembler.Assemble(result, append(cfg.AssembleOptions(), assembler.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("assembling document: %w", err)
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		OutputHeader("AsyncAPI Scanner")
		cliutil.Writef(os.Stderr, "Config: %s\n", configPath)
		for _, src := range sources {
			cliutil.Writef(os.Stderr, "Scanner: %s\n", src)
		}
		if toStdout {
			cliutil.Writef(os.Stderr, "Output: <stdout>\n")
		} else {
			cliutil.Writef(os.Stderr, "Output: %s\n", outputPath)
		}
		outputStats(build, totalTime)
		cliutil.WriteList(os.Stderr, "Merge warnings", result.Warnings.Strings())
		cliutil.WriteList(os.Stderr, "Reference warnings", build.Warnings.Strings())
	}

	if toStdout {
		data, err := assembler.Marshal(build.Document, format)
		if err != nil {
			return fmt.Errorf("marshaling document: %w", err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing document to stdout: %w", err)
		}
		return nil
	}

	if err := assembler.WriteDocument(build.Document, outputPath, format); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "Output written to: %s\n", outputPath)
	}
	return nil
}
