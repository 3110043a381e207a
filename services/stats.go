package services

import (
	"context"
	"sync"

	"hpo-ontology-gateway/clients"
	"hpo-ontology-gateway/models"
)

// Window sizes for the statistics fetches. Closures get a wide window so
// counts reflect the full neighborhood; direct edges stay narrower.
const (
	statsClosureWindow = 1000
	statsEdgeWindow    = 100
)

// StatsService computes hierarchy depth and breadth metrics for one term.
type StatsService struct {
	client   clients.OntologyClient
	resolver *ClosureResolver
	logger   Logger
}

// NewStatsService creates a new statistics service
func NewStatsService(client clients.OntologyClient, resolver *ClosureResolver, logger Logger) *StatsService {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &StatsService{
		client:   client,
		resolver: resolver,
		logger:   logger,
	}
}

// statsFetches holds the independent result slots of one aggregation.
// Each goroutine writes only its own slot, so the join needs no locking.
type statsFetches struct {
	term    *models.Term
	termErr error

	ancestors      []models.TermRef
	ancestorsErr   error
	descendants    []models.TermRef
	descendantsErr error
	parents        []models.TermRef
	parentsErr     error
	children       []models.TermRef
	childrenErr    error
}

// GetTermStats fetches the term record and its four hierarchy neighborhoods
// concurrently, joins them all, and inspects each outcome independently.
//
// The term fetch is load-bearing: if it fails the whole operation fails.
// The four hierarchy fetches are not: any of them failing degrades that
// count to zero, records the failure, and sets the partial flag — one
// failure never cancels or hides its siblings.
//
// Depth from root is reported as the ancestor count. HPO is a DAG, so a
// term can reach the root along paths of different lengths; the count is an
// approximation kept for compatibility, not a verified path length.
func (s *StatsService) GetTermStats(ctx context.Context, id string) (*models.TermStats, error) {
	termID := NormalizeTermID(id)

	closureWindow := models.Pagination{Max: statsClosureWindow}
	edgeWindow := models.Pagination{Max: statsEdgeWindow}

	var fetches statsFetches
	var wg sync.WaitGroup

	wg.Add(5)
	go func() {
		defer wg.Done()
		fetches.term, fetches.termErr = s.client.FetchTerm(ctx, termID)
	}()
	go func() {
		defer wg.Done()
		fetches.ancestors, fetches.ancestorsErr = s.resolver.Ancestors(ctx, termID, &closureWindow)
	}()
	go func() {
		defer wg.Done()
		fetches.descendants, fetches.descendantsErr = s.resolver.Descendants(ctx, termID, &closureWindow)
	}()
	go func() {
		defer wg.Done()
		fetches.parents, fetches.parentsErr = s.resolver.Parents(ctx, termID, &edgeWindow)
	}()
	go func() {
		defer wg.Done()
		fetches.children, fetches.childrenErr = s.resolver.Children(ctx, termID, &edgeWindow)
	}()
	wg.Wait()

	if fetches.termErr != nil {
		return nil, fetches.termErr
	}
	term := fetches.term

	stats := &models.TermStats{
		Term:             models.TermRef{ID: term.ID, Name: term.Name},
		AncestorCount:    len(fetches.ancestors),
		ParentCount:      len(fetches.parents),
		ChildCount:       len(fetches.children),
		DescendantCount:  len(fetches.descendants),
		SynonymCount:     len(term.Synonyms),
		XrefCount:        len(term.Xrefs),
		AlternativeCount: len(term.AlternativeIDs),
		IsObsolete:       term.IsObsolete,
	}

	recordFailure := func(name string, err error) {
		if err == nil {
			return
		}
		stats.Partial = true
		stats.FailedFetches = append(stats.FailedFetches, name+": "+err.Error())
		s.logger.Warn("stats sub-fetch failed",
			String("term_id", term.ID),
			String("fetch", name),
			String("cause", err.Error()))
	}
	recordFailure("ancestors", fetches.ancestorsErr)
	recordFailure("descendants", fetches.descendantsErr)
	recordFailure("parents", fetches.parentsErr)
	recordFailure("children", fetches.childrenErr)

	stats.DepthFromRoot = stats.AncestorCount

	return stats, nil
}
