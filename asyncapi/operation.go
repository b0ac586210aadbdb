package asyncapi

import "github.com/erraggy/asynctools/internal/pathutil"

// Action is the direction of an operation from the application's point of view.
type Action string

const (
	// ActionSend means the application sends messages to the channel.
	ActionSend Action = "send"
	// ActionReceive means the application receives messages from the channel.
	ActionReceive Action = "receive"
)

// IsValid reports whether a is one of the actions defined by AsyncAPI 3.0.
func (a Action) IsValid() bool {
	return a == ActionSend || a == ActionReceive
}

// Operation describes a send or receive action bound to a channel.
//
// Messages is a set: after merging it holds no two equal references.
type Operation struct {
	// Name is the key of the operation in the document; it is not serialized.
	Name        string             `yaml:"-" json:"-"`
	Action      Action             `yaml:"action" json:"action"`
	Channel     *ChannelReference  `yaml:"channel" json:"channel"`
	Title       string             `yaml:"title,omitempty" json:"title,omitempty"`
	Summary     string             `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Messages    []MessageReference `yaml:"messages,omitempty" json:"messages,omitempty"`
	Bindings    map[string]any     `yaml:"bindings,omitempty" json:"bindings,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// ChannelReference points an operation at a channel of the same document.
type ChannelReference struct {
	Ref string `yaml:"$ref" json:"$ref"`
}

// NewChannelReference builds a reference to the named channel.
func NewChannelReference(channel string) *ChannelReference {
	return &ChannelReference{Ref: pathutil.ChannelRef(channel)}
}

// ChannelName returns the name of the referenced channel.
// ok is false when r is nil or does not point into "#/channels/".
func (r *ChannelReference) ChannelName() (name string, ok bool) {
	if r == nil {
		return "", false
	}
	return pathutil.ChannelName(r.Ref)
}

// Equal reports whether both references point at the same channel.
func (r *ChannelReference) Equal(other *ChannelReference) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Ref == other.Ref
}

// OperationEntry is one (name, operation) pair as produced by a scanner.
type OperationEntry struct {
	Name      string
	Operation *Operation
}

// NewOperationEntry pairs an operation with its name and sets Operation.Name when it is empty.
func NewOperationEntry(name string, operation *Operation) OperationEntry {
	if operation != nil && operation.Name == "" {
		operation.Name = name
	}
	return OperationEntry{Name: name, Operation: operation}
}
