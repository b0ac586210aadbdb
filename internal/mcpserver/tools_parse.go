package mcpserver

import (
	"context"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/internal/maputil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Spec specInput `json:"spec" jsonschema:"The partial AsyncAPI description to parse"`
}

type parseChannel struct {
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

type parseOperation struct {
	Name         string `json:"name"`
	Action       string `json:"action"`
	Channel      string `json:"channel,omitempty"`
	MessageCount int    `json:"message_count"`
}

type parseOutput struct {
	Version        string           `json:"version,omitempty"`
	Format         string           `json:"format"`
	Title          string           `json:"title,omitempty"`
	ChannelCount   int              `json:"channel_count"`
	OperationCount int              `json:"operation_count"`
	Channels       []parseChannel   `json:"channels,omitempty"`
	Operations     []parseOperation `json:"operations,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
	Summary        string           `json:"summary"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Version:        result.Version,
		Format:         string(result.SourceFormat),
		ChannelCount:   len(result.Channels),
		OperationCount: len(result.Operations),
		Warnings:       result.Warnings,
	}
	if result.Document != nil && result.Document.Info != nil {
		output.Title = result.Document.Info.Title
	}

	output.Channels = makeSlice[parseChannel](len(result.Channels))
	for _, entry := range result.Channels {
		output.Channels = append(output.Channels, summarizeChannel(entry))
	}

	output.Operations = makeSlice[parseOperation](len(result.Operations))
	for _, entry := range result.Operations {
		output.Operations = append(output.Operations, summarizeOperation(entry))
	}

	output.Summary = "Parsed " + formatCount(output.ChannelCount, "channel") +
		" and " + formatCount(output.OperationCount, "operation") + "."
	if len(output.Warnings) > 0 {
		output.Summary += " " + formatCount(len(output.Warnings), "warning") + "."
	}

	return nil, output, nil
}

func summarizeChannel(entry asyncapi.ChannelEntry) parseChannel {
	pc := parseChannel{Name: entry.Name}
	if entry.Channel == nil {
		return pc
	}
	pc.Address = entry.Channel.Address
	if len(entry.Channel.Messages) > 0 {
		pc.Messages = maputil.SortedKeys(entry.Channel.Messages)
	}
	return pc
}

func summarizeOperation(entry asyncapi.OperationEntry) parseOperation {
	po := parseOperation{Name: entry.Name}
	if entry.Operation == nil {
		return po
	}
	po.Action = string(entry.Operation.Action)
	if name, ok := entry.Operation.Channel.ChannelName(); ok {
		po.Channel = name
	}
	po.MessageCount = len(entry.Operation.Messages)
	return po
}
