// Package asyncapi provides the AsyncAPI 3.0 data model used by asynctools,
// and parsing for partial AsyncAPI descriptions.
//
// A partial description is what one scanner knows about an application: a set
// of channels and operations discovered for a single messaging technology.
// Several partial descriptions may describe the same channel or operation
// from different angles; the merger package reduces them to one entity per
// name, and the assembler package embeds the result into a full [Document].
//
// # Entities and names
//
// Channels and operations are keyed by name in the final document. The name
// is carried on the entity itself ([Channel.Name], [Operation.Name]) so that
// scanners can emit ordered (name, entity) pairs as [ChannelEntry] and
// [OperationEntry] values. The name is not serialized inside the object.
//
// # Message identity
//
// Operations refer to messages through [MessageReference] values. Two
// references are the same message when their $ref strings are equal; this
// is structural identity, independent of which scanner built the value:
//
//	a := asyncapi.NewChannelMessageReference("orders", "OrderCreated")
//	b := asyncapi.MessageReference{Ref: "#/channels/orders/messages/OrderCreated"}
//	a.Equal(b) // true
//
// # Parsing partial descriptions
//
// Order matters when merging, because the first description of a name
// supplies its metadata. [ParseWithOptions] therefore reports channels and
// operations in document order, not map order:
//
//	result, err := asyncapi.ParseWithOptions(asyncapi.WithFilePath("kafka.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, entry := range result.Channels {
//		fmt.Println(entry.Name)
//	}
//
// Both YAML and JSON input are accepted.
package asyncapi
