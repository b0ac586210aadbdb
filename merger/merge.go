package merger

import (
	"fmt"
	"maps"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
)

// MergeChannels reduces ordered channel entries to one channel per name.
//
// Entries are folded left to right. The first channel seen for a name is
// kept as-is; each later one is merged into the accumulated channel with
// the accumulated channel as base, so the earliest entry supplies every
// non-collection field and wins message key clashes.
//
// Input channels are never modified. A name seen once maps to the very
// pointer it was given. Empty input yields an empty, non-nil map.
//
// MergeChannels panics with an *asyncerrors.InvariantError when an entry
// holds a nil channel; use [Merger] to get an error value instead.
func MergeChannels(entries []asyncapi.ChannelEntry) map[string]*asyncapi.Channel {
	merged := make(map[string]*asyncapi.Channel, len(entries))
	for i, e := range entries {
		if e.Channel == nil {
			panic(&asyncerrors.InvariantError{
				Component: "merger.MergeChannels",
				Message:   fmt.Sprintf("nil channel for %q (entry %d)", e.Name, i),
			})
		}
		if acc, ok := merged[e.Name]; ok {
			merged[e.Name] = mergeChannel(acc, e.Channel)
		} else {
			merged[e.Name] = e.Channel
		}
	}
	return merged
}

// MergeOperations reduces ordered operation entries to one operation per name.
//
// It follows the same fold as [MergeChannels]. Message references are
// combined as a set under structural equality and keep first-seen order.
//
// MergeOperations panics with an *asyncerrors.InvariantError when an entry
// holds a nil operation.
func MergeOperations(entries []asyncapi.OperationEntry) map[string]*asyncapi.Operation {
	merged := make(map[string]*asyncapi.Operation, len(entries))
	for i, e := range entries {
		if e.Operation == nil {
			panic(&asyncerrors.InvariantError{
				Component: "merger.MergeOperations",
				Message:   fmt.Sprintf("nil operation for %q (entry %d)", e.Name, i),
			})
		}
		if acc, ok := merged[e.Name]; ok {
			merged[e.Name] = mergeOperation(acc, e.Operation)
		} else {
			merged[e.Name] = e.Operation
		}
	}
	return merged
}

// mergeChannel returns a new channel with base's fields and the union of
// both message maps. Keys already in base keep base's message unless it is nil.
func mergeChannel(base, incoming *asyncapi.Channel) *asyncapi.Channel {
	merged := *base

	messages := make(map[string]*asyncapi.Message, len(base.Messages)+len(incoming.Messages))
	maps.Copy(messages, base.Messages)
	for key, msg := range incoming.Messages {
		if existing, exists := messages[key]; !exists || existing == nil {
			messages[key] = msg
		}
	}
	if len(messages) > 0 {
		merged.Messages = messages
	}
	return &merged
}

// mergeOperation returns a new operation with base's fields and the set
// union of both message reference lists.
func mergeOperation(base, incoming *asyncapi.Operation) *asyncapi.Operation {
	merged := *base

	refs := make([]asyncapi.MessageReference, 0, len(base.Messages)+len(incoming.Messages))
	seen := make(map[string]struct{}, cap(refs))
	for _, list := range [][]asyncapi.MessageReference{base.Messages, incoming.Messages} {
		for _, ref := range list {
			if _, dup := seen[ref.Key()]; dup {
				continue
			}
			seen[ref.Key()] = struct{}{}
			refs = append(refs, ref)
		}
	}
	if len(refs) > 0 {
		merged.Messages = refs
	}
	return &merged
}
