// Package assembler embeds merged channels and operations into a complete
// AsyncAPI 3.0 document.
//
// The assembler adds document-level metadata (info, servers, default
// content type, reusable components) around a [merger.MergeResult] and
// checks that operations point at channels and messages that exist in the
// result. Unresolved references are reported as warnings; payload schemas
// are referenced by name and never resolved.
//
//	merged, err := merger.MergeWithOptions(merger.WithFilePaths("kafka.yaml", "amqp.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	built, err := assembler.Assemble(merged,
//		assembler.WithInfo(&asyncapi.Info{Title: "Orders", Version: "1.0.0"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = assembler.WriteDocument(built.Document, "asyncapi.yaml", asyncapi.SourceFormatYAML)
package assembler
