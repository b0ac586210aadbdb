package asyncapi

import "reflect"

// Channel describes a communication path messages are exchanged on.
//
// Messages is keyed by message name. After merging, each key holds the
// message registered first for it.
type Channel struct {
	// Name is the key of the channel in the document; it is not serialized.
	Name        string              `yaml:"-" json:"-"`
	Address     string              `yaml:"address,omitempty" json:"address,omitempty"`
	Title       string              `yaml:"title,omitempty" json:"title,omitempty"`
	Summary     string              `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Messages    map[string]*Message `yaml:"messages,omitempty" json:"messages,omitempty"`
	Bindings    map[string]any      `yaml:"bindings,omitempty" json:"bindings,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Message describes the payload and headers of a unit of data sent on a channel.
// A message may itself be a reference ($ref) to a component message.
type Message struct {
	Ref         string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name        string         `yaml:"name,omitempty" json:"name,omitempty"`
	Title       string         `yaml:"title,omitempty" json:"title,omitempty"`
	Summary     string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	ContentType string         `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Payload     any            `yaml:"payload,omitempty" json:"payload,omitempty"`
	Headers     any            `yaml:"headers,omitempty" json:"headers,omitempty"`
	Bindings    map[string]any `yaml:"bindings,omitempty" json:"bindings,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Equal reports whether two messages carry the same content.
// Both nil returns true.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	return reflect.DeepEqual(m, other)
}

// ChannelEntry is one (name, channel) pair as produced by a scanner.
type ChannelEntry struct {
	Name    string
	Channel *Channel
}

// NewChannelEntry pairs a channel with its name and sets Channel.Name when it is empty.
func NewChannelEntry(name string, channel *Channel) ChannelEntry {
	if channel != nil && channel.Name == "" {
		channel.Name = name
	}
	return ChannelEntry{Name: name, Channel: channel}
}
