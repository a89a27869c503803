package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the ingested document to query"`
	Question   string `json:"question" jsonschema:"the question to answer from the document"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path string `json:"path" jsonschema:"absolute path to the PDF file to ingest"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	State      string `json:"state"`
	Chunks     int    `json:"chunks,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SummarizeInput is the input schema for the summarize tool.
type SummarizeInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the ingested document to summarize"`
}

// SummarizeOutput is the output schema for the summarize tool.
type SummarizeOutput struct {
	Summary string `json:"summary"`
}

// ReviewInput is the input schema for the review tool.
type ReviewInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the ingested document to review"`
	Role       string `json:"role,omitempty" jsonschema:"reviewer role: physicist, chemist, synthesis or editor; omit for a general peer review"`
}

// ReviewOutput is the output schema for the review tool.
type ReviewOutput struct {
	Review string `json:"review"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question grounded in an ingested PDF, with page citations",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize",
		Description: "Summarize the full text of an ingested PDF",
	}, s.handleSummarize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "review",
		Description: "Critically review an ingested PDF, optionally from a reviewer role's perspective",
	}, s.handleReview)

	if s.ports.Ingestor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Ingest a PDF file so it can be queried",
		}, s.handleIngest)
	}
}

// handleAsk handles the ask tool invocation. The streaming reply is
// collected into a single answer; MCP tools return whole results.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := collect(ctx, func(ctx context.Context) (<-chan string, <-chan error) {
		return s.ports.Querier.Ask(ctx, input.DocumentID, "", input.Question)
	})
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

// handleSummarize handles the summarize tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	summary, err := collect(ctx, func(ctx context.Context) (<-chan string, <-chan error) {
		return s.ports.Querier.Summarize(ctx, input.DocumentID, "")
	})
	if err != nil {
		return nil, SummarizeOutput{}, err
	}
	return nil, SummarizeOutput{Summary: summary}, nil
}

// handleReview handles the review tool invocation.
func (s *Server) handleReview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReviewInput,
) (*mcp.CallToolResult, ReviewOutput, error) {
	review, err := collect(ctx, func(ctx context.Context) (<-chan string, <-chan error) {
		return s.ports.Querier.Review(ctx, input.DocumentID, "", input.Role)
	})
	if err != nil {
		return nil, ReviewOutput{}, err
	}
	return nil, ReviewOutput{Review: review}, nil
}

// handleIngest handles the ingest tool invocation. It blocks until the
// pipeline reaches a terminal state so the caller sees the outcome.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	docID, events, err := s.ports.Ingestor.Ingest(ctx, input.Path)
	if err != nil {
		if errors.Is(err, domain.ErrBusy) {
			return nil, IngestOutput{Error: "another ingestion is already running"}, nil
		}
		return nil, IngestOutput{}, err
	}

	out := IngestOutput{DocumentID: docID}
	for ev := range events {
		switch ev.Kind {
		case domain.IngestProgress:
			out.Chunks = ev.Total
		case domain.IngestReady:
			out.State = string(domain.StateReady)
		case domain.IngestFailed:
			out.State = string(domain.StateFailed)
			if ev.Err != nil {
				out.Error = ev.Err.Error()
			}
		}
	}
	return nil, out, nil
}

// collect drains a streaming reply into one string.
func collect(ctx context.Context, start func(context.Context) (<-chan string, <-chan error)) (string, error) {
	deltas, errs := start(ctx)

	var b strings.Builder
	for delta := range deltas {
		b.WriteString(delta)
	}
	if err := <-errs; err != nil {
		return "", err
	}
	return b.String(), nil
}
