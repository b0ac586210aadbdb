// Package config loads asynctools project configuration.
//
// A project file describes document metadata and the ordered list of
// scanners to run. TOML (asynctools.toml) is the primary format; YAML and
// JSON files with the same keys are accepted too.
//
//	[info]
//	title = "Orders"
//	version = "1.2.0"
//
//	[servers.prod]
//	host = "kafka.example.com:9092"
//	protocol = "kafka"
//
//	[[scanners]]
//	name = "kafka-handlers"
//	type = "annotations"
//	protocol = "kafka"
//	dir = "."
//
//	[[scanners]]
//	name = "legacy"
//	type = "documents"
//	files = ["docs/legacy.yaml"]
//
// Scanner order is merge precedence: earlier scanners supply metadata.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/assembler"
	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/scanner"
)

// DefaultFileName is the project file looked up when no path is given.
const DefaultFileName = "asynctools.toml"

// Scanner types.
const (
	ScannerDocuments   = "documents"
	ScannerAnnotations = "annotations"
)

var validate = validator.New()

// Config is a loaded project configuration.
type Config struct {
	Info               Info              `toml:"info" yaml:"info"`
	ID                 string            `toml:"id" yaml:"id"`
	DefaultContentType string            `toml:"default_content_type" yaml:"default_content_type"`
	ConflictWarnings   bool              `toml:"conflict_warnings" yaml:"conflict_warnings"`
	Output             Output            `toml:"output" yaml:"output"`
	Servers            map[string]Server `toml:"servers" yaml:"servers" validate:"dive"`
	Scanners           []Scanner         `toml:"scanners" yaml:"scanners" validate:"required,min=1,dive"`

	// dir is the directory of the loaded file; relative paths resolve against it.
	dir string
}

// Info is the document info block.
type Info struct {
	Title       string `toml:"title" yaml:"title" validate:"required"`
	Version     string `toml:"version" yaml:"version" validate:"required"`
	Description string `toml:"description" yaml:"description"`
}

// Server describes one broker connection.
type Server struct {
	Host            string `toml:"host" yaml:"host" validate:"required"`
	Protocol        string `toml:"protocol" yaml:"protocol" validate:"required"`
	ProtocolVersion string `toml:"protocol_version" yaml:"protocol_version"`
	Pathname        string `toml:"pathname" yaml:"pathname"`
	Description     string `toml:"description" yaml:"description"`
}

// Output controls where the assembled document is written.
type Output struct {
	Path   string `toml:"path" yaml:"path"`
	Format string `toml:"format" yaml:"format" validate:"omitempty,oneof=yaml json"`
}

// Scanner configures one scanner.
type Scanner struct {
	Name     string   `toml:"name" yaml:"name" validate:"required"`
	Type     string   `toml:"type" yaml:"type" validate:"required,oneof=documents annotations"`
	Protocol string   `toml:"protocol" yaml:"protocol"`
	Dir      string   `toml:"dir" yaml:"dir"`
	Patterns []string `toml:"patterns" yaml:"patterns"`
	Files    []string `toml:"files" yaml:"files" validate:"required_if=Type documents"`
}

// Default returns the configuration used for keys a file leaves out.
func Default() Config {
	return Config{
		Info:               Info{Title: assembler.DefaultTitle, Version: assembler.DefaultVersion},
		DefaultContentType: "application/json",
		ConflictWarnings:   true,
		Output:             Output{Path: "asyncapi.yaml"},
	}
}

// Load reads and validates the project file at path. The format is chosen
// by extension: .toml, or .yaml/.yml/.json.
func Load(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = loadTOML(path)
	case ".yaml", ".yml", ".json":
		cfg, err = loadYAML(path)
	default:
		return nil, &asyncerrors.ConfigError{Option: "config", Value: path, Message: "unsupported config file extension (use .toml, .yaml or .json)"}
	}
	if err != nil {
		return nil, err
	}

	cfg.dir = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTOML decodes path and overlays the keys it defines onto Default().
func loadTOML(path string) (*Config, error) {
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, &asyncerrors.ConfigError{Option: "config", Value: path, Message: "failed to parse TOML", Cause: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &asyncerrors.ConfigError{Option: "config", Value: path, Message: fmt.Sprintf("unknown key %q", undecoded[0].String())}
	}

	cfg := Default()
	if meta.IsDefined("info", "title") {
		cfg.Info.Title = strings.TrimSpace(raw.Info.Title)
	}
	if meta.IsDefined("info", "version") {
		cfg.Info.Version = strings.TrimSpace(raw.Info.Version)
	}
	if meta.IsDefined("info", "description") {
		cfg.Info.Description = raw.Info.Description
	}
	if meta.IsDefined("id") {
		cfg.ID = strings.TrimSpace(raw.ID)
	}
	if meta.IsDefined("default_content_type") {
		cfg.DefaultContentType = strings.TrimSpace(raw.DefaultContentType)
	}
	if meta.IsDefined("conflict_warnings") {
		cfg.ConflictWarnings = raw.ConflictWarnings
	}
	if meta.IsDefined("output", "path") {
		cfg.Output.Path = strings.TrimSpace(raw.Output.Path)
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(raw.Output.Format))
	}
	cfg.Servers = raw.Servers
	cfg.Scanners = raw.Scanners
	return &cfg, nil
}

// loadYAML decodes path on top of Default(); absent keys keep their defaults.
func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided input
	if err != nil {
		return nil, &asyncerrors.ConfigError{Option: "config", Value: path, Message: "failed to read file", Cause: err}
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &asyncerrors.ConfigError{Option: "config", Value: path, Message: "failed to parse YAML", Cause: err}
	}
	return &cfg, nil
}

// Validate checks required keys and value ranges.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &asyncerrors.ConfigError{Option: "config", Message: "invalid configuration", Cause: err}
	}
	fe := fieldErrs[0]
	value := fe.Value()
	if s, ok := value.(string); ok && s == "" {
		value = nil
	}
	return &asyncerrors.ConfigError{
		Option:  fe.Namespace(),
		Value:   value,
		Message: fmt.Sprintf("failed %q check", fe.Tag()),
	}
}

// Resolve makes p absolute relative to the config file directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// OutputFormat returns the configured output format, falling back to the
// output path extension and then YAML.
func (c *Config) OutputFormat() asyncapi.SourceFormat {
	if f, err := asyncapi.ParseSourceFormat(c.Output.Format); err == nil {
		return f
	}
	if f := asyncapi.DetectFormatFromPath(c.Output.Path); f != asyncapi.SourceFormatUnknown {
		return f
	}
	return asyncapi.SourceFormatYAML
}

// BuildScanners creates the configured scanners in file order.
func (c *Config) BuildScanners(logger asyncapi.Logger) []scanner.Scanner {
	scanners := make([]scanner.Scanner, 0, len(c.Scanners))
	for _, sc := range c.Scanners {
		switch sc.Type {
		case ScannerDocuments:
			files := make([]string, len(sc.Files))
			for i, f := range sc.Files {
				files[i] = c.Resolve(f)
			}
			s := scanner.NewDocumentScanner(sc.Name, sc.Protocol, files...)
			s.Logger = logger
			scanners = append(scanners, s)
		case ScannerAnnotations:
			dir := sc.Dir
			if dir == "" {
				dir = "."
			}
			s := scanner.NewAnnotationScanner(sc.Name, sc.Protocol, c.Resolve(dir), sc.Patterns...)
			s.Logger = logger
			scanners = append(scanners, s)
		}
	}
	return scanners
}

// AssembleOptions converts the document settings into assembler options.
func (c *Config) AssembleOptions() []assembler.Option {
	opts := []assembler.Option{
		assembler.WithInfo(&asyncapi.Info{
			Title:       c.Info.Title,
			Version:     c.Info.Version,
			Description: c.Info.Description,
		}),
		assembler.WithID(c.ID),
		assembler.WithDefaultContentType(c.DefaultContentType),
	}
	if len(c.Servers) > 0 {
		servers := make(map[string]*asyncapi.Server, len(c.Servers))
		for name, s := range c.Servers {
			servers[name] = &asyncapi.Server{
				Host:            s.Host,
				Protocol:        s.Protocol,
				ProtocolVersion: s.ProtocolVersion,
				Pathname:        s.Pathname,
				Description:     s.Description,
			}
		}
		opts = append(opts, assembler.WithServers(servers))
	}
	return opts
}
