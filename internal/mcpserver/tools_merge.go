package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/assembler"
	"github.com/erraggy/asynctools/internal/pathutil"
	"github.com/erraggy/asynctools/merger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mergeInput struct {
	Specs              []specInput `json:"specs"                          jsonschema:"Partial AsyncAPI descriptions in precedence order (first wins)"`
	Title              string      `json:"title,omitempty"                jsonschema:"Title of the assembled document"`
	Version            string      `json:"version,omitempty"              jsonschema:"Version of the assembled document"`
	ID                 string      `json:"id,omitempty"                   jsonschema:"Application identifier URI of the assembled document"`
	NoConflictWarnings bool        `json:"no_conflict_warnings,omitempty" jsonschema:"Do not report values discarded by the first-wins rule"`
	Format             string      `json:"format,omitempty"               jsonschema:"Output format: yaml or json. Defaults to the output file extension, then yaml."`
	Output             string      `json:"output,omitempty"               jsonschema:"File path to write the merged document. If omitted the result is returned inline."`
}

type mergeWarning struct {
	Category string `json:"category"`
	Path     string `json:"path"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type mergeOutput struct {
	SpecCount       int            `json:"spec_count"`
	EntryCount      int            `json:"entry_count"`
	ChannelCount    int            `json:"channel_count"`
	OperationCount  int            `json:"operation_count"`
	MessageCount    int            `json:"message_count"`
	ConflictCount   int            `json:"conflict_count"`
	ReferenceIssues int            `json:"reference_issues"`
	Warnings        []mergeWarning `json:"warnings,omitempty"`
	BuildID         string         `json:"build_id"`
	WrittenTo       string         `json:"written_to,omitempty"`
	Document        string         `json:"document,omitempty"`
	Summary         string         `json:"summary"`
}

func handleMerge(_ context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	if len(input.Specs) == 0 {
		return errResult(fmt.Errorf("at least 1 spec is required for merging")), mergeOutput{}, nil
	}
	if len(input.Specs) > cfg.MaxMergeSpecs {
		return errResult(fmt.Errorf("too many specs: got %d, maximum is %d; set ASYNCTOOLS_MAX_MERGE_SPECS to increase",
			len(input.Specs), cfg.MaxMergeSpecs)), mergeOutput{}, nil
	}

	format := asyncapi.SourceFormatUnknown
	if input.Format != "" {
		f, err := asyncapi.ParseSourceFormat(input.Format)
		if err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		format = f
	}

	sources := make([]merger.Source, 0, len(input.Specs))
	for i, spec := range input.Specs {
		result, err := spec.resolve()
		if err != nil {
			return errResult(fmt.Errorf("spec[%d]: %w", i, err)), mergeOutput{}, nil
		}
		src := merger.SourceFromParseResult(result)
		src.Name = spec.label(i)
		sources = append(sources, src)
	}

	merged, err := merger.MergeWithOptions(
		merger.WithSources(sources...),
		merger.WithConflictWarnings(cfg.ConflictWarnings && !input.NoConflictWarnings),
	)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	var opts []assembler.Option
	if input.Title != "" || input.Version != "" {
		info := &asyncapi.Info{Title: input.Title, Version: input.Version}
		if info.Title == "" {
			info.Title = assembler.DefaultTitle
		}
		if info.Version == "" {
			info.Version = assembler.DefaultVersion
		}
		opts = append(opts, assembler.WithInfo(info))
	}
	if input.ID != "" {
		opts = append(opts, assembler.WithID(input.ID))
	}
	build, err := assembler.Assemble(merged, opts...)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	output := mergeOutput{
		SpecCount:       len(input.Specs),
		EntryCount:      merged.EntryCount,
		ChannelCount:    build.Stats.Channels,
		OperationCount:  build.Stats.Operations,
		MessageCount:    build.Stats.Messages,
		ConflictCount:   len(merged.Warnings),
		ReferenceIssues: len(build.Warnings),
		BuildID:         build.BuildID,
	}

	output.Warnings = makeSlice[mergeWarning](len(merged.Warnings) + len(build.Warnings))
	for _, w := range merged.Warnings {
		output.Warnings = append(output.Warnings, mergeWarning{
			Category: string(w.Category),
			Path:     w.Path,
			Severity: w.Severity.String(),
			Message:  w.Message,
		})
	}
	for _, w := range build.Warnings {
		output.Warnings = append(output.Warnings, mergeWarning{
			Category: string(w.Category),
			Path:     w.Path,
			Severity: w.Severity.String(),
			Message:  w.Message,
		})
	}

	output.Summary = buildMergeSummary(output)

	if input.Output != "" {
		cleanPath, pathErr := pathutil.SanitizeOutputPath(input.Output)
		if pathErr != nil {
			return errResult(fmt.Errorf("invalid output path: %w", pathErr)), mergeOutput{}, nil
		}
		if err := assembler.WriteDocument(build.Document, cleanPath, format); err != nil {
			return errResult(err), mergeOutput{}, nil
		}
		output.WrittenTo = cleanPath
		return nil, output, nil
	}

	data, err := assembler.Marshal(build.Document, format)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	output.Document = string(data)

	return nil, output, nil
}

func buildMergeSummary(output mergeOutput) string {
	summary := "Merged " + strconv.Itoa(output.SpecCount) + " specs (" + strconv.Itoa(output.EntryCount) + " entries)"
	summary += " into " + formatCount(output.ChannelCount, "channel")
	summary += " and " + formatCount(output.OperationCount, "operation") + "."

	if output.ConflictCount > 0 {
		summary += " " + formatCount(output.ConflictCount, "conflict") + " resolved by first-wins."
	}
	if output.ReferenceIssues > 0 {
		summary += " " + formatCount(output.ReferenceIssues, "unresolved reference") + "."
	}

	return summary
}
