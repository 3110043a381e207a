package mcp

import (
	"context"
	"fmt"
	"strings"

	"hpo-ontology-gateway/models"
	"hpo-ontology-gateway/services"
)

// Shared argument helpers. MCP arguments arrive as a loosely typed map, so
// every tool guards its own argument shapes here before any remote call.

// requiredStringArg extracts a required, non-empty string argument
func requiredStringArg(params map[string]interface{}, key string) (string, bool) {
	value, ok := params[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// windowArg extracts an optional pagination window from "max" and "offset".
// JSON numbers arrive as float64; anything else is ignored and the
// resolver's per-relation default applies.
func windowArg(params map[string]interface{}) *models.Pagination {
	window := &models.Pagination{}
	present := false

	if max, ok := params["max"].(float64); ok && max > 0 {
		window.Max = int(max)
		present = true
	}
	if offset, ok := params["offset"].(float64); ok && offset >= 0 {
		window.Offset = int(offset)
		present = true
	}

	if !present {
		return nil
	}
	return window
}

// textResult wraps plain text in a tool result
func textResult(text string) *MCPToolResult {
	return &MCPToolResult{
		Content: []MCPContent{{Type: "text", Text: text}},
	}
}

// errorResult wraps an error message in a tool result
func errorResult(message string) *MCPToolResult {
	return &MCPToolResult{
		Content: []MCPContent{{Type: "text", Text: message}},
		IsError: true,
	}
}

// termIDProperty is the schema fragment shared by every id argument
func termIDProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// windowProperties are the schema fragments for pagination arguments
func windowProperties(defaultMax int) map[string]interface{} {
	return map[string]interface{}{
		"max": map[string]interface{}{
			"type":        "integer",
			"description": fmt.Sprintf("Maximum number of results to return (default: %d)", defaultMax),
			"default":     defaultMax,
			"minimum":     1,
		},
		"offset": map[string]interface{}{
			"type":        "integer",
			"description": "Number of results to skip (default: 0)",
			"default":     0,
			"minimum":     0,
		},
	}
}

// titleCase capitalizes the first letter of a relation word
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRefList formats a TermRef sequence as a numbered list
func writeRefList(b *strings.Builder, refs []models.TermRef) {
	for i, ref := range refs {
		b.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, ref.Name, ref.ID))
	}
}

// GetTermTool fetches one term record
type GetTermTool struct {
	server *MCPServer
}

// NewGetTermTool creates the hpo_get_term tool
func NewGetTermTool(server *MCPServer) *GetTermTool {
	return &GetTermTool{server: server}
}

func (t *GetTermTool) GetName() string {
	return "hpo_get_term"
}

func (t *GetTermTool) GetDescription() string {
	return "Get detailed information about an HPO term by its ID (e.g. HP:0001166), including definition, synonyms, parents and children."
}

func (t *GetTermTool) GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"term_id": termIDProperty("HPO term ID, e.g. HP:0001166 or 0001166"),
		},
		"required": []string{"term_id"},
	}
}

func (t *GetTermTool) Execute(ctx context.Context, params map[string]interface{}) (*MCPToolResult, error) {
	rawID, ok := requiredStringArg(params, "term_id")
	if !ok {
		return errorResult("Error: term_id parameter is required"), nil
	}

	termID := services.NormalizeTermID(rawID)
	term, err := t.server.services.OntologyClient.FetchTerm(ctx, termID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to fetch term %s: %v", termID, err)), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s** (%s)\n", term.Name, term.ID))

	if term.Definition != nil {
		b.WriteString(fmt.Sprintf("Definition: %s\n", *term.Definition))
	}
	if term.Comment != nil {
		b.WriteString(fmt.Sprintf("Comment: %s\n", *term.Comment))
	}
	if len(term.Synonyms) > 0 {
		b.WriteString(fmt.Sprintf("Synonyms: %s\n", strings.Join(term.Synonyms, "; ")))
	}
	if len(term.Xrefs) > 0 {
		b.WriteString(fmt.Sprintf("Cross-references: %s\n", strings.Join(term.Xrefs, ", ")))
	}
	if len(term.AlternativeIDs) > 0 {
		b.WriteString(fmt.Sprintf("Alternative IDs: %s\n", strings.Join(term.AlternativeIDs, ", ")))
	}
	if term.IsObsolete {
		b.WriteString("Status: OBSOLETE")
		if term.ReplacedBy != nil {
			b.WriteString(fmt.Sprintf(" (replaced by %s)", *term.ReplacedBy))
		}
		b.WriteString("\n")
	}

	if len(term.Parents) > 0 {
		b.WriteString(fmt.Sprintf("\nParents (%d):\n", len(term.Parents)))
		writeRefList(&b, term.Parents)
	}
	if len(term.Children) > 0 {
		b.WriteString(fmt.Sprintf("\nChildren (%d):\n", len(term.Children)))
		writeRefList(&b, term.Children)
	}

	return textResult(b.String()), nil
}

// hierarchyHopTool is the shared implementation of the four single-hop and
// closure listing tools, which differ only in name, wording and which
// resolver method they drive.
type hierarchyHopTool struct {
	server      *MCPServer
	name        string
	description string
	relation    string
	defaultMax  int
	fetch       func(ctx context.Context, resolver *services.ClosureResolver, id string, window *models.Pagination) ([]models.TermRef, error)
}

func (t *hierarchyHopTool) GetName() string {
	return t.name
}

func (t *hierarchyHopTool) GetDescription() string {
	return t.description
}

func (t *hierarchyHopTool) GetInputSchema() map[string]interface{} {
	properties := map[string]interface{}{
		"term_id": termIDProperty("HPO term ID, e.g. HP:0001166"),
	}
	for key, prop := range windowProperties(t.defaultMax) {
		properties[key] = prop
	}

	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   []string{"term_id"},
	}
}

func (t *hierarchyHopTool) Execute(ctx context.Context, params map[string]interface{}) (*MCPToolResult, error) {
	rawID, ok := requiredStringArg(params, "term_id")
	if !ok {
		return errorResult("Error: term_id parameter is required"), nil
	}

	termID := services.NormalizeTermID(rawID)
	refs, err := t.fetch(ctx, t.server.services.Resolver, termID, windowArg(params))
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to fetch %s of %s: %v", t.relation, termID, err)), nil
	}

	if len(refs) == 0 {
		return textResult(fmt.Sprintf("%s has no %s.", termID, t.relation)), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s of %s (%d):\n", titleCase(t.relation), termID, len(refs)))
	writeRefList(&b, refs)

	return textResult(b.String()), nil
}

// NewGetParentsTool creates the hpo_get_parents tool
func NewGetParentsTool(server *MCPServer) MCPTool {
	return &hierarchyHopTool{
		server:      server,
		name:        "hpo_get_parents",
		description: "Get the direct parent terms of an HPO term.",
		relation:    "parents",
		defaultMax:  20,
		fetch: func(ctx context.Context, resolver *services.ClosureResolver, id string, window *models.Pagination) ([]models.TermRef, error) {
			return resolver.Parents(ctx, id, window)
		},
	}
}

// NewGetChildrenTool creates the hpo_get_children tool
func NewGetChildrenTool(server *MCPServer) MCPTool {
	return &hierarchyHopTool{
		server:      server,
		name:        "hpo_get_children",
		description: "Get the direct child terms of an HPO term.",
		relation:    "children",
		defaultMax:  20,
		fetch: func(ctx context.Context, resolver *services.ClosureResolver, id string, window *models.Pagination) ([]models.TermRef, error) {
			return resolver.Children(ctx, id, window)
		},
	}
}

// NewGetAncestorsTool creates the hpo_get_ancestors tool
func NewGetAncestorsTool(server *MCPServer) MCPTool {
	return &hierarchyHopTool{
		server:      server,
		name:        "hpo_get_ancestors",
		description: "Get all ancestor terms of an HPO term, from the nearest ancestor up toward the root.",
		relation:    "ancestors",
		defaultMax:  50,
		fetch: func(ctx context.Context, resolver *services.ClosureResolver, id string, window *models.Pagination) ([]models.TermRef, error) {
			return resolver.Ancestors(ctx, id, window)
		},
	}
}

// NewGetDescendantsTool creates the hpo_get_descendants tool
func NewGetDescendantsTool(server *MCPServer) MCPTool {
	return &hierarchyHopTool{
		server:      server,
		name:        "hpo_get_descendants",
		description: "Get all descendant terms of an HPO term (the full subtree below it).",
		relation:    "descendants",
		defaultMax:  100,
		fetch: func(ctx context.Context, resolver *services.ClosureResolver, id string, window *models.Pagination) ([]models.TermRef, error) {
			return resolver.DescendantList(ctx, id, window)
		},
	}
}
