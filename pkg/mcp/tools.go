package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List the component names available in the library"),
	)
}

func getComponentMetadataTool() mcp.Tool {
	return mcp.NewTool("get_component_metadata",
		mcp.WithDescription("Full extracted metadata for one component: props, exports, imports, dependencies, presence flags"),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component name, e.g. Button"),
		),
	)
}

func getStoryMetadataTool() mcp.Tool {
	return mcp.NewTool("get_story_metadata",
		mcp.WithDescription("Story definitions for one component: stories with args and descriptions, shared meta, interactivity"),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component name, e.g. Button"),
		),
	)
}

func getDocumentationTool() mcp.Tool {
	return mcp.NewTool("get_documentation",
		mcp.WithDescription("Structured documentation for one component: sections, examples, imports, front matter"),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component name, e.g. Button"),
		),
		mcp.WithBoolean("summary",
			mcp.Description("Return the compact summary record instead of full content"),
		),
	)
}

func getThemeTokensTool() mcp.Tool {
	return mcp.NewTool("get_theme_tokens",
		mcp.WithDescription("Design tokens of the library theme, optionally filtered to one category"),
		mcp.WithString("category",
			mcp.Description("Category filter, e.g. colors, typography, spacing; unrecognized values return everything"),
		),
	)
}

func getThemeMetadataTool() mcp.Tool {
	return mcp.NewTool("get_theme_metadata",
		mcp.WithDescription("Theme summary: name, mode, version, token count, populated categories"),
	)
}
