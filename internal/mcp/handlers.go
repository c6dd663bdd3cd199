package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/nav"
)

// handleListPages lists every route with its canonical URL and title.
func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	site := s.store.Site()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s has %d pages:\n\n", site.Organization.Name, len(nav.All()))
	for _, r := range nav.All() {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", r.Label(), s.seo.URL(string(r)), site.Page(r).Title)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetPage returns the copy for one route.
func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("route")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: route"), nil
	}
	route, err := nav.Parse(path)
	if err != nil {
		if errors.Is(err, nav.ErrUnknownRoute) {
			return mcp.NewToolResultError(fmt.Sprintf("No page at %q. Use list_pages to see the available routes.", path)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	site := s.store.Site()
	page := site.Page(route)
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", page.Title)
	fmt.Fprintf(&sb, "URL: %s\n", s.seo.URL(string(route)))
	fmt.Fprintf(&sb, "Description: %s\n", page.Description)
	if page.Heading != "" {
		fmt.Fprintf(&sb, "Heading: %s\n", page.Heading)
	}
	if page.Intro != "" {
		fmt.Fprintf(&sb, "\n%s\n", page.Intro)
	}
	if route == nav.Home {
		fmt.Fprintf(&sb, "\n%s %s\n\n%s\n", site.Home.Headline, site.Home.Highlight, site.Home.Lead)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetServices returns the services, optionally filtered.
func (s *Server) handleGetServices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := request.GetString("filter", "")
	services := s.store.Site().FilterServices(filter)
	if len(services) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No services match %q.", filter)), nil
	}
	return mcp.NewToolResultText(formatServices(services)), nil
}

// handleGetIndustries returns the industries served.
func (s *Server) handleGetIndustries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, ind := range s.store.Site().Industries {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", ind.Title, ind.Description)
		writeList(&sb, "How we add value", ind.Value)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetTool returns one tool, or every tool when no id is given.
func (s *Server) handleGetTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	site := s.store.Site()
	id := request.GetString("id", "")
	tools := site.Tools
	if id != "" {
		t, ok := site.Tool(strings.ToLower(id))
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("No tool with id %q.", id)), nil
		}
		tools = []content.Tool{t}
	}

	var sb strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&sb, "## %s (%s)\n\n%s\n\n", t.Name, t.FullName, t.Description)
		writeList(&sb, "What it does", t.WhatItDoes)
		writeList(&sb, "Business value", t.BusinessValue)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetContact returns the organization's contact details.
func (s *Server) handleGetContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org := s.store.Site().Organization
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", org.Name)
	fmt.Fprintf(&sb, "Email: %s\n", org.Email)
	for _, p := range org.Phones {
		fmt.Fprintf(&sb, "Phone: %s (tel:%s)\n", p.Display, p.Tel)
	}
	if wa := org.WhatsAppURL(); wa != "" {
		fmt.Fprintf(&sb, "WhatsApp: %s\n", wa)
	}
	fmt.Fprintf(&sb, "Address: %s\n", org.Address.Display)
	fmt.Fprintf(&sb, "Contact page: %s\n", s.seo.URL(string(nav.Contact)))
	return mcp.NewToolResultText(sb.String()), nil
}

// formatServices renders services as Markdown sections.
func formatServices(services []content.Service) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d service(s):\n\n", len(services))
	for _, svc := range services {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", svc.Title, svc.Description)
		writeList(&sb, "Key areas", svc.KeyAreas)
		writeList(&sb, "Benefits", svc.Benefits)
	}
	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", heading)
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
	sb.WriteString("\n")
}
