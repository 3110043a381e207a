package services

import (
	"context"
	"fmt"
	"sync"

	"hpo-ontology-gateway/clients"
	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"
)

// RelationshipService classifies how two terms relate in the hierarchy and
// reports their common ancestors.
type RelationshipService struct {
	client   clients.OntologyClient
	resolver *ClosureResolver
	logger   Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(client clients.OntologyClient, resolver *ClosureResolver, logger Logger) *RelationshipService {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &RelationshipService{
		client:   client,
		resolver: resolver,
		logger:   logger,
	}
}

// CompareTerms fetches both term records and both ancestor closures in
// parallel, then classifies the pair. Classification precedence, first
// match wins:
//
//  1. the second term appears in the first term's ancestor set — the first
//     term is a descendant of the second
//  2. the first term appears in the second term's ancestor set — the
//     second term is a descendant of the first
//  3. the ancestor sets intersect — related via common ancestors
//  4. otherwise unrelated
//
// A direct containment is reported even though it trivially implies shared
// ancestors. The common-ancestor output follows the second term's closure
// order. Every fetch here is load-bearing: a wrong or missing closure would
// silently corrupt the verdict, so failures abort the comparison instead of
// degrading it.
func (s *RelationshipService) CompareTerms(ctx context.Context, firstID, secondID string) (*models.RelationshipResult, error) {
	idA := NormalizeTermID(firstID)
	idB := NormalizeTermID(secondID)

	termA, termB, err := s.fetchBothTerms(ctx, idA, idB)
	if err != nil {
		return nil, err
	}

	ancestorsA, ancestorsB, err := s.fetchBothClosures(ctx, idA, idB)
	if err != nil {
		return nil, err
	}

	ancestorSetA := make(map[string]bool, len(ancestorsA))
	for _, ref := range ancestorsA {
		ancestorSetA[ref.ID] = true
	}
	ancestorSetB := make(map[string]bool, len(ancestorsB))
	for _, ref := range ancestorsB {
		ancestorSetB[ref.ID] = true
	}

	// Intersection in B's closure order. Each closure is already a set of
	// distinct ids, so no dedup is needed.
	common := []models.TermRef{}
	for _, ref := range ancestorsB {
		if ancestorSetA[ref.ID] {
			common = append(common, ref)
		}
	}

	var verdict models.RelationshipVerdict
	switch {
	case ancestorSetA[termB.ID]:
		verdict = models.VerdictFirstIsDescendant
	case ancestorSetB[termA.ID]:
		verdict = models.VerdictSecondIsDescendant
	case len(common) > 0:
		verdict = models.VerdictCommonAncestors
	default:
		verdict = models.VerdictUnrelated
	}

	result := &models.RelationshipResult{
		First:           models.TermRef{ID: termA.ID, Name: termA.Name},
		Second:          models.TermRef{ID: termB.ID, Name: termB.Name},
		Verdict:         verdict,
		CommonAncestors: common,
	}

	s.logger.Debug("terms compared",
		String("first_id", termA.ID),
		String("second_id", termB.ID),
		String("verdict", string(verdict)),
		Int("common_ancestors", len(common)))

	return result, nil
}

// fetchBothTerms fetches both term records in parallel. If both fail, both
// causes are reported; if one fails, its failure propagates alone.
func (s *RelationshipService) fetchBothTerms(ctx context.Context, idA, idB string) (*models.Term, *models.Term, error) {
	var (
		wg           sync.WaitGroup
		termA, termB *models.Term
		errA, errB   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		termA, errA = s.client.FetchTerm(ctx, idA)
	}()
	go func() {
		defer wg.Done()
		termB, errB = s.client.FetchTerm(ctx, idB)
	}()
	wg.Wait()

	if errA != nil && errB != nil {
		return nil, nil, errors.WrapError(errB, errors.ErrTypeTransport, errors.ErrCodeOntologyAPIFailed,
			fmt.Sprintf("both term fetches failed: %s: %v; %s: %v", idA, errA, idB, errB))
	}
	if errA != nil {
		return nil, nil, errA
	}
	if errB != nil {
		return nil, nil, errB
	}

	return termA, termB, nil
}

// fetchBothClosures fetches both ancestor closures in parallel with the
// same wide window the path reconstructor uses.
func (s *RelationshipService) fetchBothClosures(ctx context.Context, idA, idB string) ([]models.TermRef, []models.TermRef, error) {
	window := models.Pagination{Max: pathAncestorWindow}

	var (
		wg                     sync.WaitGroup
		ancestorsA, ancestorsB []models.TermRef
		errA, errB             error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ancestorsA, errA = s.resolver.Ancestors(ctx, idA, &window)
	}()
	go func() {
		defer wg.Done()
		ancestorsB, errB = s.resolver.Ancestors(ctx, idB, &window)
	}()
	wg.Wait()

	if errA != nil {
		return nil, nil, errA
	}
	if errB != nil {
		return nil, nil, errB
	}

	return ancestorsA, ancestorsB, nil
}
