// Package merger reduces partial AsyncAPI descriptions to one channel and one
// operation per name.
//
// Several scanners may describe the same channel or operation: a Kafka
// listener and a Kafka producer both know the "orders" channel, each with
// its own message. The merger folds all descriptions of a name, in input
// order, into a single entity.
//
// # Merge Rules
//
//   - The first description of a name supplies every non-collection field
//     (address, title, description, action, channel, bindings).
//   - Channel messages are unioned by key. When two descriptions carry the
//     same key, the earlier message is kept.
//   - Operation message references are unioned as a set. Two references are
//     the same when their $ref strings are equal; first-seen order is kept.
//   - A name described once is passed through unchanged (same pointer).
//   - Inputs are never modified; a merge of two descriptions is a new value.
//
// # Quick Start
//
// Merge partial description files:
//
//	result, err := merger.MergeWithOptions(
//		merger.WithFilePaths("kafka.yaml", "amqp.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, name := range result.ChannelNames() {
//		fmt.Println(name)
//	}
//
// Or merge scanner output with a reusable Merger:
//
//	m := merger.New(merger.DefaultConfig())
//	result, err := m.Merge(kafkaSource, amqpSource)
//
// [MergeChannels] and [MergeOperations] expose the bare fold for callers that
// already hold ordered entries. They panic on nil entities; [Merger.Merge]
// validates its input and returns an *asyncerrors.ValidationError instead.
//
// # Conflict Warnings
//
// First-wins resolution is silent inside the fold. With
// Config.ConflictWarnings enabled (the default), MergeResult.Warnings lists
// each differing description, action, channel reference or message that was
// discarded, together with the source that supplied it.
package merger
