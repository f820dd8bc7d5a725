package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/search"
)

const loadFailed = "The glossary could not be loaded: %v"

// handleSearchGlossary runs the substring filter over the document.
func (s *Server) handleSearchGlossary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	doc, err := s.loader.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(loadFailed, err)), nil
	}

	opts := s.opts
	if limit := request.GetInt("limit", 0); limit > 0 {
		opts.MaxResults = limit
	}
	results := search.Search(query, doc, opts)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results for %q.", strings.TrimSpace(query))), nil
	}
	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetSubject returns the full content of one subject.
func (s *Server) handleGetSubject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("subject_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: subject_id"), nil
	}

	doc, err := s.loader.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(loadFailed, err)), nil
	}
	subject, err := doc.Subject(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v. Use list_subjects to see the available ids.", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", strings.TrimSpace(subject.Code+" "+subject.Title))
	if subject.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", subject.Description)
	}
	for _, g := range subject.Groups {
		fmt.Fprintf(&sb, "\n## %s (%s)\n", g.Title, g.ID)
		if len(g.Members) > 0 {
			fmt.Fprintf(&sb, "Members: %s\n", strings.Join(g.Members, ", "))
		}
		for _, c := range g.Cards {
			sb.WriteString("\n")
			writeCard(&sb, c)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetCard returns one card by id.
func (s *Server) handleGetCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("card_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: card_id"), nil
	}

	doc, err := s.loader.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(loadFailed, err)), nil
	}
	subject, group, card, err := doc.Card(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Subject: %s (%s)\nGroup: %s\n\n", subject.Title, subject.ID, group.Title)
	writeCard(&sb, *card)
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListSubjects lists the subjects in display order.
func (s *Server) handleListSubjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.loader.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(loadFailed, err)), nil
	}
	if len(doc.Subjects) == 0 {
		return mcp.NewToolResultText("The glossary has no subjects."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d subject(s):\n", len(doc.Subjects))
	for i := range doc.Subjects {
		subj := &doc.Subjects[i]
		fmt.Fprintf(&sb, "- %s: %s %s (%d cards)\n", subj.ID, subj.Code, subj.Title, subj.CardCount())
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func writeCard(sb *strings.Builder, c glossary.Card) {
	fmt.Fprintf(sb, "- %s / %s [%s]\n", c.ES, c.EN, c.ID)
	if c.DefES != "" {
		fmt.Fprintf(sb, "  ES: %s\n", c.DefES)
	}
	if c.DefEN != "" {
		fmt.Fprintf(sb, "  EN: %s\n", c.DefEN)
	}
}

// formatSearchResults converts search results into a compact text listing
// for AI agent consumption.
func formatSearchResults(results []search.Match) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n%d. [%s] %s", i+1, r.Kind, r.Text))
		if r.Detail != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", r.Detail))
		}
		sb.WriteString("\n")

		loc := "subject=" + r.SubjectID
		if r.GroupID != "" {
			loc += " group=" + r.GroupID
		}
		if r.CardID != "" {
			loc += " card=" + r.CardID
		}
		sb.WriteString("   " + loc + "\n")
	}

	return sb.String()
}
