// Package mcpserver exposes the persona system as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Dmetrikx/goPersonaChatter/internal/persona"
	"github.com/Dmetrikx/goPersonaChatter/internal/responder"
)

const (
	serverName    = "gopersona"
	serverVersion = "0.1.0"
)

// Responder produces persona responses
type Responder interface {
	GetResponse(ctx context.Context, personaID, query string, opts responder.Options) string
}

// Personas resolves and lists registered personas
type Personas interface {
	Lookup(id string) (persona.Persona, bool)
	IDs() []string
}

// NewServer creates an MCPServer with the persona tools registered.
func NewServer(r Responder, personas Personas, logger *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	registerAskPersona(srv, r, logger)
	registerListPersonas(srv, personas)

	return srv
}

// Serve runs srv over the given streams until ctx is cancelled or in closes.
func Serve(ctx context.Context, srv *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(srv).Listen(ctx, in, out)
}

// --- ask_persona ---

func registerAskPersona(srv *server.MCPServer, r Responder, logger *slog.Logger) {
	tool := mcp.NewTool("ask_persona",
		mcp.WithDescription("Answer a question in the voice of a registered persona"),
		mcp.WithString("persona", mcp.Required(), mcp.Description("Persona id, see list_personas")),
		mcp.WithString("query", mcp.Required(), mcp.Description("The question to answer")),
		mcp.WithBoolean("use_cot", mcp.Description("Reason step by step before answering (default true)")),
		mcp.WithBoolean("compare_models", mcp.Description("Ask every backend and keep the best answer (default true)")),
	)

	srv.AddTool(tool, askPersonaHandler(r, logger))
}

func askPersonaHandler(r Responder, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		personaID := req.GetString("persona", "")
		query := strings.TrimSpace(req.GetString("query", ""))
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		opts := responder.DefaultOptions()
		opts.UseCoT = req.GetBool("use_cot", opts.UseCoT)
		opts.CompareModels = req.GetBool("compare_models", opts.CompareModels)

		logger.InfoContext(ctx, "mcp ask_persona",
			"persona_id", personaID,
			"use_cot", opts.UseCoT,
			"compare_models", opts.CompareModels)

		return mcp.NewToolResultText(r.GetResponse(ctx, personaID, query, opts)), nil
	}
}

// --- list_personas ---

func registerListPersonas(srv *server.MCPServer, personas Personas) {
	tool := mcp.NewTool("list_personas",
		mcp.WithDescription("List the registered persona ids with a short description"),
	)

	srv.AddTool(tool, listPersonasHandler(personas))
}

func listPersonasHandler(personas Personas) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := personas.IDs()
		lines := make([]string, 0, len(ids))
		for _, id := range ids {
			p, _ := personas.Lookup(id)
			lines = append(lines, fmt.Sprintf("%s: %s", id, p.Summary()))
		}
		return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
	}
}
