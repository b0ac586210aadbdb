package asyncapi

import "github.com/erraggy/asynctools/internal/pathutil"

// MessageReference points at a message, either inside a channel
// ("#/channels/{channel}/messages/{message}") or in components
// ("#/components/messages/{message}").
//
// Identity is structural: two references denote the same message exactly
// when their Ref strings are equal. MessageReference is a comparable value
// type, so it can be used directly as a map key; Key and Equal spell the
// contract out for callers that prefer not to rely on that.
type MessageReference struct {
	Ref string `yaml:"$ref" json:"$ref"`
}

// NewChannelMessageReference builds a reference to a message defined on a channel.
func NewChannelMessageReference(channel, message string) MessageReference {
	return MessageReference{Ref: pathutil.ChannelMessageRef(channel, message)}
}

// NewComponentMessageReference builds a reference to a component message.
func NewComponentMessageReference(message string) MessageReference {
	return MessageReference{Ref: pathutil.ComponentMessageRef(message)}
}

// Key returns the identity key of the reference.
func (r MessageReference) Key() string {
	return r.Ref
}

// Equal reports whether r and other denote the same message.
func (r MessageReference) Equal(other MessageReference) bool {
	return r.Key() == other.Key()
}

// String implements fmt.Stringer.
func (r MessageReference) String() string {
	return r.Ref
}

// ChannelMessage splits a channel message reference into channel and message names.
// ok is false for component references and malformed refs.
func (r MessageReference) ChannelMessage() (channel, message string, ok bool) {
	return pathutil.SplitChannelMessageRef(r.Ref)
}

// ComponentMessage returns the message name of a component reference.
// ok is false for channel references and malformed refs.
func (r MessageReference) ComponentMessage() (message string, ok bool) {
	return pathutil.ComponentMessageName(r.Ref)
}
