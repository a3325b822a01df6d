package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"the question to answer from the documentation"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string          `json:"answer"`
	Contexts []ContextOutput `json:"contexts"`
}

// ContextOutput is one cited passage backing an answer.
type ContextOutput struct {
	Source  string  `json:"source"`
	ChunkID string  `json:"chunk_id"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path string `json:"path" jsonschema:"the documentation directory to index"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Indexed int `json:"indexed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the indexed documentation with cited sources",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Rebuild the documentation index from a directory",
	}, s.handleIngest)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if err := s.ports.Pipeline.LoadIndex(); err != nil {
		return nil, AskOutput{}, err
	}

	answer, err := s.ports.Pipeline.Ask(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:   answer.Answer,
		Contexts: make([]ContextOutput, len(answer.Contexts)),
	}
	for i := range answer.Contexts {
		output.Contexts[i] = ContextOutput{
			Source:  answer.Contexts[i].Source,
			ChunkID: answer.Contexts[i].ChunkID,
			Score:   answer.Contexts[i].Score,
			Text:    answer.Contexts[i].Text,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	count, err := s.ports.Pipeline.Ingest(ctx, input.Path)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{Indexed: count}, nil
}
