package merger

import (
	"fmt"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/maputil"
)

// Source is the output of one scanner: channel and operation entries in
// discovery order, labelled with the scanner's name for diagnostics.
type Source struct {
	Name       string
	Channels   []asyncapi.ChannelEntry
	Operations []asyncapi.OperationEntry
}

// EntryCount returns the number of channel and operation entries in s.
func (s Source) EntryCount() int {
	return len(s.Channels) + len(s.Operations)
}

// SourceFromParseResult converts a parsed partial description into a Source
// named after its SourcePath.
func SourceFromParseResult(pr *asyncapi.ParseResult) Source {
	return Source{
		Name:       pr.SourcePath,
		Channels:   pr.Channels,
		Operations: pr.Operations,
	}
}

// Config holds configuration for merging.
type Config struct {
	// ConflictWarnings records a MergeWarning whenever the first-wins rule
	// discards a differing value.
	ConflictWarnings bool
}

// DefaultConfig returns the default merge configuration.
func DefaultConfig() Config {
	return Config{
		ConflictWarnings: true,
	}
}

// Merger merges sources into one channel and one operation per name.
type Merger struct {
	config Config
	// Logger receives diagnostic output. Nil means no logging.
	Logger asyncapi.Logger
}

// New creates a new Merger with the provided configuration.
func New(config Config) *Merger {
	return &Merger{config: config}
}

// MergeResult contains the merged channels and operations.
type MergeResult struct {
	// Channels maps each channel name to its merged channel
	Channels map[string]*asyncapi.Channel
	// Operations maps each operation name to its merged operation
	Operations map[string]*asyncapi.Operation
	// Warnings lists values discarded by first-wins resolution
	Warnings MergeWarnings
	// SourceCount is the number of sources merged
	SourceCount int
	// EntryCount is the number of channel and operation entries read
	EntryCount int
}

// ChannelNames returns the merged channel names in sorted order.
func (r *MergeResult) ChannelNames() []string {
	return maputil.SortedKeys(r.Channels)
}

// OperationNames returns the merged operation names in sorted order.
func (r *MergeResult) OperationNames() []string {
	return maputil.SortedKeys(r.Operations)
}

func (m *Merger) log() asyncapi.Logger {
	return asyncapi.LoggerOrNop(m.Logger)
}

// Merge validates sources and folds them in order. Earlier sources take
// precedence over later ones.
//
// A nil entity or an empty name yields an *asyncerrors.ValidationError and
// no result.
func (m *Merger) Merge(sources ...Source) (*MergeResult, error) {
	var (
		channels   []asyncapi.ChannelEntry
		operations []asyncapi.OperationEntry
		owners     = newOwnership()
	)
	for _, src := range sources {
		if err := validateSource(src); err != nil {
			return nil, err
		}
		channels = append(channels, src.Channels...)
		operations = append(operations, src.Operations...)
		owners.record(src)
	}

	result := &MergeResult{
		Channels:    MergeChannels(channels),
		Operations:  MergeOperations(operations),
		SourceCount: len(sources),
		EntryCount:  len(channels) + len(operations),
	}
	if m.config.ConflictWarnings {
		result.Warnings = detectConflicts(sources)
	}

	m.log().Debug("merged sources",
		"sources", result.SourceCount,
		"entries", result.EntryCount,
		"channels", len(result.Channels),
		"operations", len(result.Operations),
		"warnings", len(result.Warnings),
	)
	for _, name := range owners.shared() {
		m.log().Debug("name described by several sources", "name", name, "sources", owners.sources[name])
	}
	return result, nil
}

func validateSource(src Source) error {
	for i, e := range src.Channels {
		if e.Name == "" {
			return &asyncerrors.ValidationError{Source: src.Name, Path: "channels", Index: i, Message: "channel name is empty"}
		}
		if e.Channel == nil {
			return &asyncerrors.ValidationError{Source: src.Name, Path: "channels." + e.Name, Index: i, Message: "channel is nil"}
		}
	}
	for i, e := range src.Operations {
		if e.Name == "" {
			return &asyncerrors.ValidationError{Source: src.Name, Path: "operations", Index: i, Message: "operation name is empty"}
		}
		if e.Operation == nil {
			return &asyncerrors.ValidationError{Source: src.Name, Path: "operations." + e.Name, Index: i, Message: "operation is nil"}
		}
	}
	return nil
}

// ownership tracks which sources describe each channel or operation name.
type ownership struct {
	sources map[string][]string
	order   []string
}

func newOwnership() *ownership {
	return &ownership{sources: make(map[string][]string)}
}

func (o *ownership) record(src Source) {
	add := func(key string) {
		list, ok := o.sources[key]
		if !ok {
			o.order = append(o.order, key)
		}
		for _, s := range list {
			if s == src.Name {
				return
			}
		}
		o.sources[key] = append(list, src.Name)
	}
	for _, e := range src.Channels {
		add("channels." + e.Name)
	}
	for _, e := range src.Operations {
		add("operations." + e.Name)
	}
}

// shared returns keys described by more than one source, in first-seen order.
func (o *ownership) shared() []string {
	var out []string
	for _, key := range o.order {
		if len(o.sources[key]) > 1 {
			out = append(out, key)
		}
	}
	return out
}

type firstChannel struct {
	source  string
	channel *asyncapi.Channel
}

type firstMessage struct {
	source  string
	message *asyncapi.Message
}

type firstOperation struct {
	source    string
	operation *asyncapi.Operation
}

// detectConflicts replays the first-wins rule and reports every differing
// value it discards. It does not take part in the fold itself.
func detectConflicts(sources []Source) MergeWarnings {
	var warnings MergeWarnings

	channels := make(map[string]firstChannel)
	messages := make(map[string]map[string]firstMessage)
	for _, src := range sources {
		for _, e := range src.Channels {
			first, seen := channels[e.Name]
			if !seen {
				channels[e.Name] = firstChannel{source: src.Name, channel: e.Channel}
				messages[e.Name] = make(map[string]firstMessage, len(e.Channel.Messages))
			} else if differs(first.channel.Description, e.Channel.Description) {
				warnings = append(warnings, NewDescriptionConflictWarning("channels", e.Name, first.source, src.Name))
			}

			known := messages[e.Name]
			for _, key := range maputil.SortedKeys(e.Channel.Messages) {
				msg := e.Channel.Messages[key]
				kept, exists := known[key]
				if !exists || kept.message == nil {
					known[key] = firstMessage{source: src.Name, message: msg}
					continue
				}
				if !kept.message.Equal(msg) {
					warnings = append(warnings, NewMessageDroppedWarning(e.Name, key, kept.source, src.Name))
				}
			}
		}
	}

	operations := make(map[string]firstOperation)
	for _, src := range sources {
		for _, e := range src.Operations {
			first, seen := operations[e.Name]
			if !seen {
				operations[e.Name] = firstOperation{source: src.Name, operation: e.Operation}
				continue
			}
			kept, op := first.operation, e.Operation
			if differs(string(kept.Action), string(op.Action)) {
				warnings = append(warnings, NewActionConflictWarning(e.Name, string(kept.Action), string(op.Action), first.source, src.Name))
			}
			if kept.Channel != nil && op.Channel != nil && !kept.Channel.Equal(op.Channel) {
				warnings = append(warnings, NewChannelRefConflictWarning(e.Name, kept.Channel.Ref, op.Channel.Ref, first.source, src.Name))
			}
			if differs(kept.Description, op.Description) {
				warnings = append(warnings, NewDescriptionConflictWarning("operations", e.Name, first.source, src.Name))
			}
		}
	}
	return warnings
}

// differs reports whether both values are set and not equal.
func differs(kept, dropped string) bool {
	return kept != "" && dropped != "" && kept != dropped
}

// String implements fmt.Stringer.
func (s Source) String() string {
	return fmt.Sprintf("%s (%d channels, %d operations)", s.Name, len(s.Channels), len(s.Operations))
}
