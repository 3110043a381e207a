package services

import (
	"context"
	"fmt"
	"sync"

	"hpo-ontology-gateway/clients"
	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"
)

// maxBatchSize is the hard cap on ids per batch call, enforced before any
// fetch is dispatched.
const maxBatchSize = 20

// BatchService retrieves a bounded list of terms concurrently, with each
// id's outcome isolated from the others.
type BatchService struct {
	client clients.OntologyClient
	logger Logger
}

// NewBatchService creates a new batch retrieval service
func NewBatchService(client clients.OntologyClient, logger Logger) *BatchService {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &BatchService{
		client: client,
		logger: logger,
	}
}

// GetTerms fetches every id concurrently and partitions the outcomes.
//
// An empty input is a distinguished nothing-to-do result, not a failure.
// Exceeding the cap is reported without issuing a single fetch. Each id's
// fetch writes into its own outcome slot, so one failing id never affects
// another, and both partitions preserve the caller's input order rather
// than completion order.
func (s *BatchService) GetTerms(ctx context.Context, ids []string) (*models.BatchResult, error) {
	if len(ids) == 0 {
		return &models.BatchResult{
			Requested: 0,
			Outcomes:  []models.BatchOutcome{},
			Successes: []models.BatchOutcome{},
			Failures:  []models.BatchOutcome{},
		}, nil
	}

	if len(ids) > maxBatchSize {
		return nil, errors.NewValidationError(errors.ErrCodeBatchTooLarge,
			fmt.Sprintf("batch size %d exceeds the maximum of %d", len(ids), maxBatchSize), nil)
	}

	outcomes := make([]models.BatchOutcome, len(ids))

	var wg sync.WaitGroup
	for i, rawID := range ids {
		wg.Add(1)
		go func(slot int, raw string) {
			defer wg.Done()

			termID := NormalizeTermID(raw)
			term, err := s.client.FetchTerm(ctx, termID)
			if err != nil {
				outcomes[slot] = models.BatchOutcome{
					ID:      termID,
					Success: false,
					Failure: err.Error(),
				}
				return
			}

			outcomes[slot] = models.BatchOutcome{
				ID:      termID,
				Success: true,
				Term:    term,
			}
		}(i, rawID)
	}
	wg.Wait()

	result := &models.BatchResult{
		Requested: len(ids),
		Outcomes:  outcomes,
		Successes: []models.BatchOutcome{},
		Failures:  []models.BatchOutcome{},
	}
	for _, outcome := range outcomes {
		if outcome.Success {
			result.Successes = append(result.Successes, outcome)
		} else {
			result.Failures = append(result.Failures, outcome)
		}
	}

	s.logger.Info("batch retrieval completed",
		Int("requested", result.Requested),
		Int("succeeded", len(result.Successes)),
		Int("failed", len(result.Failures)))

	return result, nil
}
