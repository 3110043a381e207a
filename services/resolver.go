package services

import (
	"context"

	"hpo-ontology-gateway/clients"
	"hpo-ontology-gateway/config"
	"hpo-ontology-gateway/models"
)

// ClosureResolver wraps the ontology client's hop and closure operations
// with the pagination window table: caller-omitted windows get the
// per-relation default, and every window is capped to the source's
// advertised maximum before the call goes out.
//
// Empty results and failures are distinct outcomes. A term with zero
// parents is a successful empty sequence, never an error.
type ClosureResolver struct {
	client clients.OntologyClient
	limits config.WindowLimits
}

// NewClosureResolver creates a resolver over the given client
func NewClosureResolver(client clients.OntologyClient, limits config.WindowLimits) *ClosureResolver {
	return &ClosureResolver{
		client: client,
		limits: limits,
	}
}

// Parents resolves the direct parents of a term
func (r *ClosureResolver) Parents(ctx context.Context, id string, window *models.Pagination) ([]models.TermRef, error) {
	return r.client.FetchParents(ctx, id, resolveWindow(window, r.limits.Parents))
}

// Children resolves the direct children of a term
func (r *ClosureResolver) Children(ctx context.Context, id string, window *models.Pagination) ([]models.TermRef, error) {
	return r.client.FetchChildren(ctx, id, resolveWindow(window, r.limits.Children))
}

// Ancestors resolves the ancestor closure of a term, nearest ancestor first
func (r *ClosureResolver) Ancestors(ctx context.Context, id string, window *models.Pagination) ([]models.TermRef, error) {
	return r.client.FetchAncestors(ctx, id, resolveWindow(window, r.limits.Ancestors))
}

// Descendants resolves the descendant closure of a term
func (r *ClosureResolver) Descendants(ctx context.Context, id string, window *models.Pagination) ([]models.TermRef, error) {
	return r.client.FetchDescendants(ctx, id, resolveWindow(window, r.limits.Descendants))
}

// DescendantList resolves the descendant closure through the listing entry
// point, which carries a wider default window than Descendants.
func (r *ClosureResolver) DescendantList(ctx context.Context, id string, window *models.Pagination) ([]models.TermRef, error) {
	return r.client.FetchDescendants(ctx, id, resolveWindow(window, r.limits.DescendantList))
}

// EffectiveWindow reports the window a call would actually use, after
// defaulting and capping. Callers that detect truncation by length compare
// against this, not against what they asked for.
func (r *ClosureResolver) EffectiveWindow(window *models.Pagination, spec config.WindowSpec) models.Pagination {
	return resolveWindow(window, spec)
}

// AncestorSpec exposes the ancestor window bounds for callers that pick
// their own wide windows.
func (r *ClosureResolver) AncestorSpec() config.WindowSpec {
	return r.limits.Ancestors
}

// resolveWindow applies the default-or-cap table to a requested window.
// A nil window, or one with non-positive max, takes the relation default;
// a negative offset is clamped to zero.
func resolveWindow(window *models.Pagination, spec config.WindowSpec) models.Pagination {
	resolved := models.Pagination{Max: spec.Default, Offset: 0}

	if window != nil {
		if window.Max > 0 {
			resolved.Max = window.Max
		}
		if window.Offset > 0 {
			resolved.Offset = window.Offset
		}
	}

	if resolved.Max > spec.Max {
		resolved.Max = spec.Max
	}

	return resolved
}
