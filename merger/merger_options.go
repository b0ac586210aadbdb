package merger

import (
	"fmt"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
)

// Option is a function that configures a merge operation
type Option func(*mergeConfig) error

// mergeConfig holds configuration for a merge operation
type mergeConfig struct {
	// Inputs in the order their options were applied
	inputs []input

	// Configuration options (nil means use default from DefaultConfig)
	conflictWarnings *bool
	logger           asyncapi.Logger
}

// input is exactly one of a ready source, a parsed description or a file path.
type input struct {
	source *Source
	parsed *asyncapi.ParseResult
	path   string
}

// MergeWithOptions merges sources using functional options.
// Inputs keep the order in which their options are given, and that order
// decides precedence.
//
//	result, err := merger.MergeWithOptions(
//	    merger.WithFilePaths("kafka.yaml", "amqp.yaml"),
//	    merger.WithConflictWarnings(true),
//	)
func MergeWithOptions(opts ...Option) (*MergeResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("merger: invalid options: %w", err)
	}

	defaults := DefaultConfig()
	m := New(Config{
		ConflictWarnings: boolValueOrDefault(cfg.conflictWarnings, defaults.ConflictWarnings),
	})
	m.Logger = cfg.logger

	sources := make([]Source, 0, len(cfg.inputs))
	for _, in := range cfg.inputs {
		switch {
		case in.source != nil:
			sources = append(sources, *in.source)
		case in.parsed != nil:
			sources = append(sources, SourceFromParseResult(in.parsed))
		default:
			pr, err := asyncapi.ParseWithOptions(
				asyncapi.WithFilePath(in.path),
				asyncapi.WithLogger(cfg.logger),
			)
			if err != nil {
				return nil, fmt.Errorf("merger: failed to parse %s: %w", in.path, err)
			}
			sources = append(sources, SourceFromParseResult(pr))
		}
	}

	return m.Merge(sources...)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*mergeConfig, error) {
	cfg := &mergeConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.inputs) == 0 {
		return nil, &asyncerrors.ConfigError{
			Option:  "input",
			Message: "must specify at least one source (use WithSources, WithParsed, or WithFilePaths)",
		}
	}
	return cfg, nil
}

func boolValueOrDefault(ptr *bool, defaultVal bool) bool {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}

// WithSources adds ready-made sources, such as scanner output.
func WithSources(sources ...Source) Option {
	return func(cfg *mergeConfig) error {
		for i := range sources {
			cfg.inputs = append(cfg.inputs, input{source: &sources[i]})
		}
		return nil
	}
}

// WithParsed adds parsed partial descriptions.
func WithParsed(results ...*asyncapi.ParseResult) Option {
	return func(cfg *mergeConfig) error {
		for i, pr := range results {
			if pr == nil {
				return &asyncerrors.ConfigError{Option: "WithParsed", Value: i, Message: "parse result is nil"}
			}
			cfg.inputs = append(cfg.inputs, input{parsed: pr})
		}
		return nil
	}
}

// WithFilePaths adds partial description files, parsed when the merge runs.
func WithFilePaths(paths ...string) Option {
	return func(cfg *mergeConfig) error {
		for _, p := range paths {
			if p == "" {
				return &asyncerrors.ConfigError{Option: "WithFilePaths", Message: "file path is empty"}
			}
			cfg.inputs = append(cfg.inputs, input{path: p})
		}
		return nil
	}
}

// WithConflictWarnings enables or disables conflict warnings.
// Default: true
func WithConflictWarnings(enabled bool) Option {
	return func(cfg *mergeConfig) error {
		cfg.conflictWarnings = &enabled
		return nil
	}
}

// WithLogger sets the logger for the merge and any parsing it performs.
func WithLogger(l asyncapi.Logger) Option {
	return func(cfg *mergeConfig) error {
		cfg.logger = l
		return nil
	}
}
