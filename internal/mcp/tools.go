package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchGlossaryTool defines the search_glossary MCP tool.
var searchGlossaryTool = mcp.NewTool("search_glossary",
	mcp.WithDescription("Search subjects, groups and bilingual (Spanish/English) terms by case-insensitive substring."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for; at least two characters"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// getSubjectTool defines the get_subject MCP tool.
var getSubjectTool = mcp.NewTool("get_subject",
	mcp.WithDescription("Get every group and card of a subject with both terms and definitions."),
	mcp.WithString("subject_id",
		mcp.Required(),
		mcp.Description("Subject id as returned by list_subjects"),
	),
)

// getCardTool defines the get_card MCP tool.
var getCardTool = mcp.NewTool("get_card",
	mcp.WithDescription("Get one card with its subject and group."),
	mcp.WithString("card_id",
		mcp.Required(),
		mcp.Description("Card id as returned by search_glossary"),
	),
)

// listSubjectsTool defines the list_subjects MCP tool.
var listSubjectsTool = mcp.NewTool("list_subjects",
	mcp.WithDescription("List all subjects in display order with their codes and card counts."),
)
