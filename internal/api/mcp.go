package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/madhaviai/my-profile-mcp-server/internal/catalog"
	"github.com/madhaviai/my-profile-mcp-server/internal/profile"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Catalog *catalog.Catalog
	Store   *profile.Store
	Version string
}

// failure is the structured error payload returned to the client on a
// failed invocation. Kind is one of "unknown_tool", "invalid_argument",
// or "internal".
type failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewMCPServer creates an MCP server with every catalog tool and the
// profile resource registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"madhavi-profile",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("Professional profile server — structured facts about Madhavi K's skills, education, and contact details."),
		server.WithRecovery(),
	)

	for _, d := range deps.Catalog.Tools() {
		s.AddTool(newMCPTool(d), mcpInvoke(deps, d.Name))
	}

	s.AddResource(
		mcp.NewResource(
			"profile://full",
			"Full Profile",
			mcp.WithResourceDescription("The complete professional profile as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceProfile(deps),
	)

	return s
}

// newMCPTool translates a catalog descriptor into an MCP tool definition.
func newMCPTool(d catalog.Descriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, p := range d.Params {
		var propOpts []mcp.PropertyOption
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		switch p.Type {
		case "number":
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(d.Name, opts...)
}

func mcpInvoke(deps MCPDeps, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.New().String()

		payload, err := deps.Catalog.Invoke(name, req.GetArguments())
		if err != nil {
			slog.Debug("invocation failed", "id", id, "tool", name, "error", err)
			return mcpFailure(err), nil
		}

		b, err := json.Marshal(payload)
		if err != nil {
			return mcpFailure(fmt.Errorf("marshalling payload: %w", err)), nil
		}

		slog.Debug("invocation completed", "id", id, "tool", name)
		return mcpText(string(b)), nil
	}
}

func mcpResourceProfile(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(deps.Store.Profile())
		if err != nil {
			return nil, fmt.Errorf("marshalling profile: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// mcpFailure converts a dispatch error into a structured error result.
// Invocation failures are always reported to the client, never raised as
// protocol faults.
func mcpFailure(err error) *mcp.CallToolResult {
	kind := "internal"
	switch {
	case errors.Is(err, catalog.ErrUnknownTool):
		kind = "unknown_tool"
	case errors.Is(err, catalog.ErrInvalidArgument):
		kind = "invalid_argument"
	}

	body, mErr := json.Marshal(failure{Kind: kind, Message: err.Error()})
	if mErr != nil {
		body = []byte(fmt.Sprintf(`{"kind":%q,"message":"unserializable error"}`, kind))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: string(body)},
		},
		IsError: true,
	}
}
