package assembler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/maputil"
	"github.com/erraggy/asynctools/internal/severity"
	"github.com/erraggy/asynctools/merger"
)

// Default document metadata used when WithInfo is not given.
const (
	DefaultTitle   = "AsyncAPI"
	DefaultVersion = "1.0.0"
)

// Option configures an assembly.
type Option func(*assembleConfig) error

type assembleConfig struct {
	info               *asyncapi.Info
	id                 string
	servers            map[string]*asyncapi.Server
	defaultContentType string
	components         *asyncapi.Components
	logger             asyncapi.Logger
}

// WithInfo sets the document info. Title and version are required.
func WithInfo(info *asyncapi.Info) Option {
	return func(cfg *assembleConfig) error {
		if info == nil || info.Title == "" || info.Version == "" {
			return &asyncerrors.ConfigError{Option: "WithInfo", Message: "info title and version are required"}
		}
		cfg.info = info
		return nil
	}
}

// WithID sets the document id, an application identifier URI.
func WithID(id string) Option {
	return func(cfg *assembleConfig) error {
		cfg.id = id
		return nil
	}
}

// WithServers sets the servers of the document.
func WithServers(servers map[string]*asyncapi.Server) Option {
	return func(cfg *assembleConfig) error {
		for name, s := range servers {
			if s == nil || s.Host == "" || s.Protocol == "" {
				return &asyncerrors.ConfigError{Option: "WithServers", Value: name, Message: "server host and protocol are required"}
			}
		}
		cfg.servers = servers
		return nil
	}
}

// WithDefaultContentType sets the content type assumed for messages that declare none.
func WithDefaultContentType(contentType string) Option {
	return func(cfg *assembleConfig) error {
		cfg.defaultContentType = contentType
		return nil
	}
}

// WithComponents sets reusable components; component messages count as
// resolvable operation message targets.
func WithComponents(components *asyncapi.Components) Option {
	return func(cfg *assembleConfig) error {
		cfg.components = components
		return nil
	}
}

// WithLogger sets the logger for the assembly.
func WithLogger(l asyncapi.Logger) Option {
	return func(cfg *assembleConfig) error {
		cfg.logger = l
		return nil
	}
}

// Stats summarises an assembled document.
type Stats struct {
	Channels          int
	Operations        int
	Messages          int
	MessageReferences int
	Servers           int
}

// BuildResult holds an assembled document.
type BuildResult struct {
	// Document is the assembled AsyncAPI document
	Document *asyncapi.Document
	// BuildID uniquely identifies this assembly
	BuildID string
	// Warnings lists references that do not resolve inside the document
	Warnings BuildWarnings
	// Stats summarises the document
	Stats Stats
}

// Assemble builds an AsyncAPI 3.0 document from merged channels and operations.
// The merged maps are embedded as-is; nothing in result is modified.
func Assemble(result *merger.MergeResult, opts ...Option) (*BuildResult, error) {
	if result == nil {
		return nil, &asyncerrors.ConfigError{Option: "result", Message: "merge result is nil"}
	}
	cfg := &assembleConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("assembler: invalid options: %w", err)
		}
	}
	if cfg.info == nil {
		cfg.info = &asyncapi.Info{Title: DefaultTitle, Version: DefaultVersion}
	}

	doc := &asyncapi.Document{
		AsyncAPI:           asyncapi.Version,
		ID:                 cfg.id,
		Info:               cfg.info,
		Servers:            cfg.servers,
		DefaultContentType: cfg.defaultContentType,
		Components:         cfg.components,
	}
	if len(result.Channels) > 0 {
		doc.Channels = result.Channels
	}
	if len(result.Operations) > 0 {
		doc.Operations = result.Operations
	}

	build := &BuildResult{
		Document: doc,
		BuildID:  uuid.NewString(),
		Warnings: checkReferences(doc),
		Stats:    collectStats(doc),
	}

	asyncapi.LoggerOrNop(cfg.logger).Debug("assembled document",
		"build_id", build.BuildID,
		"channels", build.Stats.Channels,
		"operations", build.Stats.Operations,
		"warnings", len(build.Warnings),
	)
	return build, nil
}

// checkReferences reports operation references that do not resolve inside doc.
// Operations are visited in name order so warnings are stable.
func checkReferences(doc *asyncapi.Document) BuildWarnings {
	var warnings BuildWarnings
	for _, name := range maputil.SortedKeys(doc.Operations) {
		op := doc.Operations[name]
		path := "operations." + name

		channelName, ok := op.Channel.ChannelName()
		switch {
		case op.Channel == nil:
			warnings = append(warnings, newWarning(WarnMissingChannel, severity.SeverityError, path+".channel",
				"operation '%s' has no channel", name))
		case !ok || doc.Channels[channelName] == nil:
			warnings = append(warnings, newWarning(WarnUnresolvedChannel, severity.SeverityError, path+".channel",
				"operation '%s' references unknown channel '%s'", name, op.Channel.Ref))
			channelName = ""
		}

		for i, ref := range op.Messages {
			refPath := fmt.Sprintf("%s.messages[%d]", path, i)
			if msgName, ok := ref.ComponentMessage(); ok {
				if doc.Components == nil || doc.Components.Messages[msgName] == nil {
					warnings = append(warnings, newWarning(WarnUnresolvedMessage, severity.SeverityWarning, refPath,
						"operation '%s' references unknown message '%s'", name, ref.Ref))
				}
				continue
			}
			refChannel, msgName, ok := ref.ChannelMessage()
			if !ok || doc.Channels[refChannel] == nil || doc.Channels[refChannel].Messages[msgName] == nil {
				warnings = append(warnings, newWarning(WarnUnresolvedMessage, severity.SeverityWarning, refPath,
					"operation '%s' references unknown message '%s'", name, ref.Ref))
				continue
			}
			if channelName != "" && refChannel != channelName {
				warnings = append(warnings, newWarning(WarnForeignMessage, severity.SeverityWarning, refPath,
					"operation '%s' on channel '%s' references message of channel '%s'", name, channelName, refChannel))
			}
		}
	}
	return warnings
}

func collectStats(doc *asyncapi.Document) Stats {
	stats := Stats{
		Channels:   len(doc.Channels),
		Operations: len(doc.Operations),
		Servers:    len(doc.Servers),
	}
	for _, ch := range doc.Channels {
		stats.Messages += len(ch.Messages)
	}
	for _, op := range doc.Operations {
		stats.MessageReferences += len(op.Messages)
	}
	return stats
}
