// Package scanner discovers partial AsyncAPI descriptions.
//
// A [Scanner] produces one [merger.Source]: the channels and operations it
// found for a single messaging technology, in discovery order. [Run]
// executes several scanners concurrently and returns their sources in
// registration order, which is the precedence order the merger applies.
//
// Two scanners are provided:
//
//   - [DocumentScanner] reads hand-written partial description files.
//   - [AnnotationScanner] reads //asyncapi:operation directives from the doc
//     comments of Go functions and methods.
//
// # Directives
//
// An annotated handler looks like this:
//
//	//asyncapi:operation channel=orders action=receive message=events.OrderCreated protocol=kafka
//	func (h *Handler) HandleOrder(ctx context.Context, evt events.OrderCreated) error {
//
// Keys:
//
//	channel      channel name (required)
//	action       send or receive (required)
//	message      payload type, optionally qualified or a pointer (required)
//	protocol     only emitted by scanners for this protocol (optional)
//	description  operation description; quote values containing spaces (optional)
//	operation    operation name (optional, default <channel>_<action>_<FuncName>)
package scanner
