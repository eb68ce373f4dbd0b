// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Tally checklist tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mkarlsen/tally/internal/service"
	"github.com/mkarlsen/tally/internal/store"
)

// Server wraps the MCP server with Tally tools.
type Server struct {
	mcp *server.MCPServer
	svc *service.Service
}

// New creates a new MCP server with all Tally tools registered.
func New(svc *service.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Tally",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_question_sets",
		mcp.WithDescription("List the available compliance question sets."),
	), s.listSets)

	s.mcp.AddTool(mcp.NewTool("read_checklist",
		mcp.WithDescription("Read the rendered checklist for a question set, including current answers and notes."),
		mcp.WithString("set", mcp.Required(), mcp.Description("Question set id")),
	), s.readChecklist)

	s.mcp.AddTool(mcp.NewTool("answer_question",
		mcp.WithDescription("Record an answer for one question. Status is one of done, in_progress, not_done, not_applicable."),
		mcp.WithString("set", mcp.Required(), mcp.Description("Question set id")),
		mcp.WithString("question", mcp.Required(), mcp.Description("Question id within the set")),
		mcp.WithString("status", mcp.Required(), mcp.Description("New status")),
		mcp.WithString("notes", mcp.Description("Optional free-text notes, e.g. where the requirement is documented")),
	), s.answerQuestion)

	s.mcp.AddTool(mcp.NewTool("get_progress",
		mcp.WithDescription("Get the aggregate progress snapshot for a question set."),
		mcp.WithString("set", mcp.Required(), mcp.Description("Question set id")),
	), s.getProgress)

	s.mcp.AddTool(mcp.NewTool("export_checklist",
		mcp.WithDescription("Export a question set with all current answers and notes as a JSON document."),
		mcp.WithString("set", mcp.Required(), mcp.Description("Question set id")),
	), s.exportChecklist)

	// Resource: question file authoring contract.
	s.mcp.AddResource(
		mcp.NewResource("tally://question-format", "Question File Format",
			mcp.WithResourceDescription("The Markdown dialect and JSON model shape for question-set source files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listSets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Sets(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readChecklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	setID, err := req.RequireString("set")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := s.svc.LoadSet(ctx, setID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) answerQuestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	setID, err := req.RequireString("set")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	questionID, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawStatus, err := req.RequireString("status")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	status, err := store.ParseStatus(rawStatus)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes := ""
	if n, nErr := req.RequireString("notes"); nErr == nil {
		notes = n
	}

	snap, err := s.svc.Answer(ctx, setID, questionID, status, notes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("recorded %s for %s; %s", status, questionID, snap.Text)), nil
}

func (s *Server) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	setID, err := req.RequireString("set")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.svc.Progress(ctx, setID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(snap, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) exportChecklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	setID, err := req.RequireString("set")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, _, err := s.svc.Export(ctx, setID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := doc.Marshal()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "tally://question-format",
			MIMEType: "text/markdown",
			Text:     QuestionFormatContract,
		},
	}, nil
}
