package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/uimeta/pkg/provider"
)

// jsonResult marshals v into a text content result. Marshal failures
// become tool errors; the data model contains nothing unmarshalable, so
// this path exists for safety only.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError maps registry failures onto tool results. NotFound is a
// client-visible tool error, not a protocol failure; the caller decides
// what to do with a missing artifact.
func toolError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, provider.ErrNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("internal error: %v", err)), nil
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.registry.ListComponents(ctx)
	if err != nil {
		return toolError(err)
	}
	if names == nil {
		names = []string{}
	}
	return jsonResult(names)
}

func (s *Server) handleGetComponentMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	component, err := req.RequireString("component")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, err := s.registry.ComponentMetadata(ctx, component)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(meta)
}

func (s *Server) handleGetStoryMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	component, err := req.RequireString("component")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, err := s.registry.StoryMetadata(ctx, component)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(meta)
}

func (s *Server) handleGetDocumentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	component, err := req.RequireString("component")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if req.GetBool("summary", false) {
		meta, err := s.registry.DocumentationMetadata(ctx, component)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(meta)
	}

	content, err := s.registry.Documentation(ctx, component)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(content)
}

func (s *Server) handleGetThemeTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")

	tokens, err := s.registry.ThemeTokens(ctx, category)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(tokens)
}

func (s *Server) handleGetThemeMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meta, err := s.registry.ThemeMetadata(ctx)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(meta)
}
