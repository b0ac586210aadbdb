package asyncapi

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asynctools/asyncerrors"
)

// ParseResult holds a parsed partial description.
type ParseResult struct {
	// SourcePath is the file path, or a synthetic name for in-memory input
	SourcePath string
	// SourceFormat is the format of the input (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the "asyncapi" field of the input, if present
	Version string
	// Document is the decoded description. Its Channels and Operations maps
	// share pointers with the ordered entries below.
	Document *Document
	// Channels lists channels in document order
	Channels []ChannelEntry
	// Operations lists operations in document order
	Operations []OperationEntry
	// Warnings are non-fatal issues found while parsing
	Warnings []string
	// SourceSize is the size of the input in bytes
	SourceSize int64
	// LoadTime is the time spent reading the input
	LoadTime time.Duration
}

// Parser parses partial AsyncAPI descriptions.
type Parser struct {
	// Logger receives diagnostic output. Nil means no logging.
	Logger Logger
}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

func (p *Parser) log() Logger {
	return LoggerOrNop(p.Logger)
}

// Parse reads and parses the file at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided input
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("asyncapi: failed to read file: %w", err)
	}

	format := DetectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	res, err := p.parseData(data, path)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.SourceFormat = format
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses a description read from r.
// SourcePath is set to ParseReader.yaml or ParseReader.json.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("asyncapi: failed to read data: %w", err)
	}
	res, err := p.parseInMemory(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses a description held in memory.
// SourcePath is set to ParseBytes.yaml or ParseBytes.json.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	return p.parseInMemory(data, "ParseBytes")
}

func (p *Parser) parseInMemory(data []byte, origin string) (*ParseResult, error) {
	format := detectFormatFromContent(data)
	path := origin + ".yaml"
	if format == SourceFormatJSON {
		path = origin + ".json"
	}
	res, err := p.parseData(data, path)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.SourceFormat = format
	return res, nil
}

func (p *Parser) parseData(data []byte, path string) (*ParseResult, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &asyncerrors.ParseError{Path: path, Message: "invalid YAML or JSON", Cause: err}
	}

	mapping := &root
	if mapping.Kind == yaml.DocumentNode {
		if len(mapping.Content) == 0 {
			return nil, &asyncerrors.ParseError{Path: path, Message: "empty document"}
		}
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, &asyncerrors.ParseError{
			Path:    path,
			Line:    mapping.Line,
			Column:  mapping.Column,
			Message: "top level must be a mapping",
		}
	}

	doc := &Document{}
	if err := mapping.Decode(doc); err != nil {
		return nil, &asyncerrors.ParseError{Path: path, Message: "failed to decode document", Cause: err}
	}

	res := &ParseResult{
		SourcePath: path,
		Version:    doc.AsyncAPI,
		Document:   doc,
		SourceSize: int64(len(data)),
	}
	if doc.AsyncAPI != "" && !strings.HasPrefix(doc.AsyncAPI, "3.") {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("asyncapi version %q is not 3.x; fields are read as AsyncAPI 3.0", doc.AsyncAPI))
	}

	var err error
	if res.Channels, err = p.extractChannels(mappingValue(mapping, "channels"), path); err != nil {
		return nil, err
	}
	if res.Operations, err = p.extractOperations(mappingValue(mapping, "operations"), path); err != nil {
		return nil, err
	}

	// Rebuild the maps from the ordered entries so both views share pointers.
	doc.Channels = nil
	if len(res.Channels) > 0 {
		doc.Channels = make(map[string]*Channel, len(res.Channels))
		for _, e := range res.Channels {
			doc.Channels[e.Name] = e.Channel
		}
	}
	doc.Operations = nil
	if len(res.Operations) > 0 {
		doc.Operations = make(map[string]*Operation, len(res.Operations))
		for _, e := range res.Operations {
			doc.Operations[e.Name] = e.Operation
		}
	}

	p.log().Debug("parsed partial description",
		"path", path,
		"channels", len(res.Channels),
		"operations", len(res.Operations),
	)
	return res, nil
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// forEachEntry walks a mapping node in document order, rejecting duplicate keys.
func forEachEntry(node *yaml.Node, path, section string, fn func(name string, value *yaml.Node) error) error {
	if node == nil || isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &asyncerrors.ParseError{
			Path:    path,
			Line:    node.Line,
			Column:  node.Column,
			Message: section + " must be a mapping",
		}
	}
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if _, dup := seen[key.Value]; dup {
			return &asyncerrors.ParseError{
				Path:    path,
				Line:    key.Line,
				Column:  key.Column,
				Message: fmt.Sprintf("duplicate key %q in %s", key.Value, section),
			}
		}
		seen[key.Value] = struct{}{}
		if err := fn(key.Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func (p *Parser) extractChannels(node *yaml.Node, path string) ([]ChannelEntry, error) {
	var entries []ChannelEntry
	err := forEachEntry(node, path, "channels", func(name string, value *yaml.Node) error {
		ch := &Channel{}
		if isNull(value) {
			p.log().Debug("channel has no body", "path", path, "channel", name)
		} else if err := value.Decode(ch); err != nil {
			return &asyncerrors.ParseError{
				Path:    path,
				Line:    value.Line,
				Column:  value.Column,
				Message: fmt.Sprintf("invalid channel %q", name),
				Cause:   err,
			}
		}
		ch.Name = name
		entries = append(entries, ChannelEntry{Name: name, Channel: ch})
		return nil
	})
	return entries, err
}

func (p *Parser) extractOperations(node *yaml.Node, path string) ([]OperationEntry, error) {
	var entries []OperationEntry
	err := forEachEntry(node, path, "operations", func(name string, value *yaml.Node) error {
		op := &Operation{}
		if isNull(value) {
			p.log().Debug("operation has no body", "path", path, "operation", name)
		} else if err := value.Decode(op); err != nil {
			return &asyncerrors.ParseError{
				Path:    path,
				Line:    value.Line,
				Column:  value.Column,
				Message: fmt.Sprintf("invalid operation %q", name),
				Cause:   err,
			}
		}
		if op.Action != "" && !op.Action.IsValid() {
			return &asyncerrors.ParseError{
				Path:    path,
				Line:    value.Line,
				Column:  value.Column,
				Message: fmt.Sprintf("operation %q has invalid action %q (must be send or receive)", name, op.Action),
			}
		}
		op.Name = name
		entries = append(entries, OperationEntry{Name: name, Operation: op})
		return nil
	})
	return entries, err
}
