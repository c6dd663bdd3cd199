package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPagesTool defines the list_pages MCP tool.
var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List every page of the QualiPRO Consult website with its URL and title."),
)

// getPageTool defines the get_page MCP tool.
var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get the title, description and headline copy of one page."),
	mcp.WithString("route",
		mcp.Required(),
		mcp.Description("Page path, e.g. / or /services"),
		mcp.Enum("/", "/about", "/services", "/industries", "/tools", "/contact"),
	),
)

// getServicesTool defines the get_services MCP tool.
var getServicesTool = mcp.NewTool("get_services",
	mcp.WithDescription("Get the consulting services offered, with key areas and benefits."),
	mcp.WithString("filter",
		mcp.Description("Only return services mentioning this text, e.g. ISO 17025"),
	),
)

// getIndustriesTool defines the get_industries MCP tool.
var getIndustriesTool = mcp.NewTool("get_industries",
	mcp.WithDescription("Get the industries served and the value delivered to each."),
)

// getToolTool defines the get_tool MCP tool.
var getToolTool = mcp.NewTool("get_tool",
	mcp.WithDescription("Get one of the digital quality tools (ACERT, Q-DOC, Q-RISK), or all of them when no id is given."),
	mcp.WithString("id",
		mcp.Description("Tool id, e.g. acert"),
	),
)

// getContactTool defines the get_contact MCP tool.
var getContactTool = mcp.NewTool("get_contact",
	mcp.WithDescription("Get the firm's email, phone numbers, WhatsApp link and address."),
)
