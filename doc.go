// Package asynctools builds AsyncAPI 3.0 documents from partial descriptions
// of a system's channels and operations.
//
// Services usually publish and consume messages in several places at once:
// hand-written partial AsyncAPI files, annotated Go producers and consumers,
// or one scan per messaging protocol. Each of those yields an ordered list of
// channels and operations. asynctools folds the lists into one entry per name
// and assembles the result into a complete document.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - asyncapi: Data model for channels, operations and messages, and a parser
//     for partial AsyncAPI descriptions
//   - merger: Merge channels and operations sharing a name across sources
//   - scanner: Discover channels and operations from documents or annotated Go code
//   - assembler: Wrap merged entries into an AsyncAPI 3.0 document and write it
//
// # Installation
//
//	go get github.com/erraggy/asynctools
//
// # Quick Start
//
// Merge two partial descriptions:
//
//	import "github.com/erraggy/asynctools/merger"
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
// Assemble and write the merged document:
//
//	import "github.com/erraggy/asynctools/assembler"
//
//	build, err := assembler.Assemble(result,
//		assembler.WithInfo(&asyncapi.Info{Title: "Orders", Version: "1.2.0"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = assembler.WriteDocument(build.Document, "asyncapi.yaml", asyncapi.SourceFormatYAML)
//
// # Merge Rules
//
// Entries are folded left to right. For entries sharing a name:
//
//   - The first entry supplies every scalar field (address, title, description,
//     action, channel reference, bindings)
//   - Channel messages are unioned by message key; the first message under a
//     key is kept
//   - Operation message references are unioned by $ref equality in first-seen order
//
// Inputs are never modified. A name that occurs once is returned unchanged.
//
// # Scanner Package
//
// Scanners produce one merger.Source each. DocumentScanner reads partial
// AsyncAPI files. AnnotationScanner loads Go packages and reads
// //asyncapi:operation directives from function doc comments:
//
//	//asyncapi:operation channel=orders action=send message=events.OrderCreated protocol=kafka
//	func (p *Producer) PublishOrder(ctx context.Context, o Order) error
//
// scanner.Run executes scanners concurrently and returns their sources in the
// order given, so merge precedence does not depend on scheduling.
//
// # Configuration
//
// The asynctools CLI reads asynctools.toml (or YAML) listing info, servers,
// output and scanners. See the internal config package for the format.
//
// # Command-Line Interface
//
//	asynctools merge -o asyncapi.yaml kafka.yaml amqp.yaml
//	asynctools scan asynctools.toml
//	asynctools mcp
//
// # Error Handling
//
// Errors are typed in the asyncerrors package and match sentinels with
// errors.Is (asyncerrors.ErrParse, ErrValidation, ErrScan, ErrConfig).
//
// # License
//
// This library is released under the MIT License. See the LICENSE file in the
// repository root for details.
package asynctools
