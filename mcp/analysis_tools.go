package mcp

import (
	"context"
	"fmt"
	"strings"

	"hpo-ontology-gateway/models"
)

// commonAncestorDisplayCap bounds how many common ancestors the comparison
// tool prints. The verdict itself is always computed on the full set.
const commonAncestorDisplayCap = 10

// GetTermPathTool reconstructs the root-to-term path
type GetTermPathTool struct {
	server *MCPServer
}

// NewGetTermPathTool creates the hpo_get_term_path tool
func NewGetTermPathTool(server *MCPServer) *GetTermPathTool {
	return &GetTermPathTool{server: server}
}

func (t *GetTermPathTool) GetName() string {
	return "hpo_get_term_path"
}

func (t *GetTermPathTool) GetDescription() string {
	return "Get the path from the ontology root down to an HPO term, with its depth from the root."
}

func (t *GetTermPathTool) GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"term_id": termIDProperty("HPO term ID, e.g. HP:0001166"),
		},
		"required": []string{"term_id"},
	}
}

func (t *GetTermPathTool) Execute(ctx context.Context, params map[string]interface{}) (*MCPToolResult, error) {
	rawID, ok := requiredStringArg(params, "term_id")
	if !ok {
		return errorResult("Error: term_id parameter is required"), nil
	}

	path, err := t.server.services.Path.ReconstructPath(ctx, rawID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to reconstruct path: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Path to %s (%s), depth %d:\n", path.Term.Name, path.Term.ID, path.Depth))
	for i, node := range path.Nodes {
		b.WriteString(strings.Repeat("  ", i))
		b.WriteString(fmt.Sprintf("%s (%s)\n", node.Name, node.ID))
	}
	if path.Partial {
		b.WriteString("\nNote: the ancestor closure was truncated; this path may be incomplete.\n")
	}

	return textResult(b.String()), nil
}

// CompareTermsTool classifies the relationship between two terms
type CompareTermsTool struct {
	server *MCPServer
}

// NewCompareTermsTool creates the hpo_compare_terms tool
func NewCompareTermsTool(server *MCPServer) *CompareTermsTool {
	return &CompareTermsTool{server: server}
}

func (t *CompareTermsTool) GetName() string {
	return "hpo_compare_terms"
}

func (t *CompareTermsTool) GetDescription() string {
	return "Compare two HPO terms: determine whether one is an ancestor or descendant of the other, or find their common ancestors."
}

func (t *CompareTermsTool) GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"first_id":  termIDProperty("First HPO term ID"),
			"second_id": termIDProperty("Second HPO term ID"),
		},
		"required": []string{"first_id", "second_id"},
	}
}

func (t *CompareTermsTool) Execute(ctx context.Context, params map[string]interface{}) (*MCPToolResult, error) {
	firstID, ok := requiredStringArg(params, "first_id")
	if !ok {
		return errorResult("Error: first_id parameter is required"), nil
	}
	secondID, ok := requiredStringArg(params, "second_id")
	if !ok {
		return errorResult("Error: second_id parameter is required"), nil
	}

	result, err := t.server.services.Relationship.CompareTerms(ctx, firstID, secondID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to compare terms: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Comparing %s (%s) and %s (%s):\n\n",
		result.First.Name, result.First.ID, result.Second.Name, result.Second.ID))

	switch result.Verdict {
	case models.VerdictFirstIsDescendant:
		b.WriteString(fmt.Sprintf("%s is a descendant of %s.\n", result.First.Name, result.Second.Name))
	case models.VerdictSecondIsDescendant:
		b.WriteString(fmt.Sprintf("%s is a descendant of %s.\n", result.Second.Name, result.First.Name))
	case models.VerdictCommonAncestors:
		b.WriteString("The terms are related through common ancestors.\n")
	default:
		b.WriteString("The terms are unrelated: their ancestor sets are disjoint.\n")
	}

	if len(result.CommonAncestors) > 0 {
		shown := result.CommonAncestors
		if len(shown) > commonAncestorDisplayCap {
			shown = shown[:commonAncestorDisplayCap]
		}
		b.WriteString(fmt.Sprintf("\nCommon ancestors (%d", len(result.CommonAncestors)))
		if len(shown) < len(result.CommonAncestors) {
			b.WriteString(fmt.Sprintf(", showing first %d", len(shown)))
		}
		b.WriteString("):\n")
		writeRefList(&b, shown)
	}

	return textResult(b.String()), nil
}

// GetTermStatsTool aggregates hierarchy statistics for one term
type GetTermStatsTool struct {
	server *MCPServer
}

// NewGetTermStatsTool creates the hpo_get_term_stats tool
func NewGetTermStatsTool(server *MCPServer) *GetTermStatsTool {
	return &GetTermStatsTool{server: server}
}

func (t *GetTermStatsTool) GetName() string {
	return "hpo_get_term_stats"
}

func (t *GetTermStatsTool) GetDescription() string {
	return "Get hierarchy statistics for an HPO term: ancestor, descendant, parent and child counts, depth from root, and metadata counts."
}

func (t *GetTermStatsTool) GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"term_id": termIDProperty("HPO term ID, e.g. HP:0001166"),
		},
		"required": []string{"term_id"},
	}
}

func (t *GetTermStatsTool) Execute(ctx context.Context, params map[string]interface{}) (*MCPToolResult, error) {
	rawID, ok := requiredStringArg(params, "term_id")
	if !ok {
		return errorResult("Error: term_id parameter is required"), nil
	}

	stats, err := t.server.services.Stats.GetTermStats(ctx, rawID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to compute term statistics: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Statistics for %s (%s):\n\n", stats.Term.Name, stats.Term.ID))
	b.WriteString(fmt.Sprintf("Ancestors: %d\n", stats.AncestorCount))
	b.WriteString(fmt.Sprintf("Direct parents: %d\n", stats.ParentCount))
	b.WriteString(fmt.Sprintf("Direct children: %d\n", stats.ChildCount))
	b.WriteString(fmt.Sprintf("Descendants: %d\n", stats.DescendantCount))
	b.WriteString(fmt.Sprintf("Depth from root: %d (approximated by ancestor count)\n", stats.DepthFromRoot))
	b.WriteString(fmt.Sprintf("Synonyms: %d\n", stats.SynonymCount))
	b.WriteString(fmt.Sprintf("Cross-references: %d\n", stats.XrefCount))
	b.WriteString(fmt.Sprintf("Alternative IDs: %d\n", stats.AlternativeCount))
	b.WriteString(fmt.Sprintf("Obsolete: %v\n", stats.IsObsolete))

	if stats.Partial {
		b.WriteString("\nWarning: some fetches failed; the affected counts read as 0:\n")
		for _, failure := range stats.FailedFetches {
			b.WriteString("- " + failure + "\n")
		}
	}

	return textResult(b.String()), nil
}

// BatchGetTermsTool fetches up to 20 terms concurrently
type BatchGetTermsTool struct {
	server *MCPServer
}

// NewBatchGetTermsTool creates the hpo_batch_get_terms tool
func NewBatchGetTermsTool(server *MCPServer) *BatchGetTermsTool {
	return &BatchGetTermsTool{server: server}
}

func (t *BatchGetTermsTool) GetName() string {
	return "hpo_batch_get_terms"
}

func (t *BatchGetTermsTool) GetDescription() string {
	return "Fetch multiple HPO terms at once (up to 20). Failed lookups are reported individually and never abort the rest of the batch."
}

func (t *BatchGetTermsTool) GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"term_ids": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "HPO term IDs to fetch (maximum 20)",
				"maxItems":    20,
			},
		},
		"required": []string{"term_ids"},
	}
}

func (t *BatchGetTermsTool) Execute(ctx context.Context, params map[string]interface{}) (*MCPToolResult, error) {
	rawIDs, ok := params["term_ids"].([]interface{})
	if !ok {
		return errorResult("Error: term_ids parameter is required and must be an array"), nil
	}

	ids := make([]string, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, ok := raw.(string)
		if !ok {
			return errorResult("Error: term_ids must contain only strings"), nil
		}
		ids = append(ids, id)
	}

	result, err := t.server.services.Batch.GetTerms(ctx, ids)
	if err != nil {
		return errorResult(fmt.Sprintf("Batch retrieval failed: %v", err)), nil
	}

	if result.Requested == 0 {
		return textResult("No term IDs were provided; nothing to fetch."), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Fetched %d of %d terms.\n", len(result.Successes), result.Requested))

	if len(result.Successes) > 0 {
		b.WriteString("\nSuccesses:\n")
		for i, outcome := range result.Successes {
			b.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, outcome.Term.Name, outcome.Term.ID))
		}
	}

	if len(result.Failures) > 0 {
		b.WriteString("\nFailures:\n")
		for i, outcome := range result.Failures {
			b.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, outcome.ID, outcome.Failure))
		}
	}

	return textResult(b.String()), nil
}
