// Package commands provides CLI command handlers for asynctools.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/erraggy/asynctools"
	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/internal/cliutil"
)

// Output format constants
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// StdoutPath is the special output path used to indicate writing to stdout.
const StdoutPath = "-"

// ResolveOutputFormat picks the document format: the --format flag when set,
// otherwise the output file extension, otherwise YAML.
func ResolveOutputFormat(format, outputPath string) (asyncapi.SourceFormat, error) {
	if format != "" {
		f, err := asyncapi.ParseSourceFormat(format)
		if err != nil {
			return asyncapi.SourceFormatUnknown, fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatYAML, FormatJSON)
		}
		return f, nil
	}
	if outputPath != "" {
		if f := asyncapi.DetectFormatFromPath(outputPath); f != asyncapi.SourceFormatUnknown {
			return f, nil
		}
	}
	return asyncapi.SourceFormatYAML, nil
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	info, err := os.Lstat(absOutputPath)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		return fmt.Errorf("commands: refusing to write to symlink: %s", outputPath)
	case err == nil:
		cliutil.Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	case !os.IsNotExist(err):
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	return nil
}

// NewLogger returns a debug-level text logger on stderr when verbose is set,
// and nil (no logging) otherwise.
func NewLogger(verbose bool) asyncapi.Logger {
	if !verbose {
		return nil
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return asyncapi.NewSlogAdapter(slog.New(handler))
}

// OutputHeader writes the command banner to stderr.
func OutputHeader(title string) {
	cliutil.Writef(os.Stderr, "%s\n", title)
	for range title {
		cliutil.Writef(os.Stderr, "=")
	}
	cliutil.Writef(os.Stderr, "\n\n")
	cliutil.Writef(os.Stderr, "asynctools version: %s\n", asynctools.Version())
}
