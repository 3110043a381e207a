package services

import (
	"context"

	"hpo-ontology-gateway/clients"
	"hpo-ontology-gateway/models"
)

// pathAncestorWindow is wide enough to cover realistic HPO depth; the
// deepest chains in the ontology are well under this.
const pathAncestorWindow = 200

// PathService reconstructs the root-to-term chain for a single term.
type PathService struct {
	client   clients.OntologyClient
	resolver *ClosureResolver
	logger   Logger
}

// NewPathService creates a new path service
func NewPathService(client clients.OntologyClient, resolver *ClosureResolver, logger Logger) *PathService {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &PathService{
		client:   client,
		resolver: resolver,
		logger:   logger,
	}
}

// ReconstructPath fetches a term and its ancestor closure and assembles the
// chain from the root down to the term itself. The source returns ancestors
// nearest-first, so the closure is reversed once here and nowhere else.
//
// The term fetch is load-bearing and propagates its failure. A term with no
// ancestors yields a single-element path with depth zero, which is a
// success, not an error. If the closure filled its window the chain may be
// truncated, and Partial says so rather than hiding it.
func (s *PathService) ReconstructPath(ctx context.Context, id string) (*models.TermPath, error) {
	termID := NormalizeTermID(id)

	term, err := s.client.FetchTerm(ctx, termID)
	if err != nil {
		return nil, err
	}

	window := models.Pagination{Max: pathAncestorWindow}
	ancestors, err := s.resolver.Ancestors(ctx, termID, &window)
	if err != nil {
		return nil, err
	}

	effective := s.resolver.EffectiveWindow(&window, s.resolver.AncestorSpec())
	partial := len(ancestors) >= effective.Max

	self := models.TermRef{ID: term.ID, Name: term.Name}

	nodes := make([]models.TermRef, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		nodes = append(nodes, ancestors[i])
	}
	nodes = append(nodes, self)

	path := &models.TermPath{
		Term:    self,
		Nodes:   nodes,
		Depth:   len(nodes) - 1,
		Partial: partial,
	}

	s.logger.Debug("path reconstructed",
		String("term_id", term.ID),
		Int("depth", path.Depth),
		Bool("partial", path.Partial))

	return path, nil
}
