package services

import (
	"context"

	"hpo-ontology-gateway/models"

	"github.com/stretchr/testify/mock"
)

// MockOntologyClient is a testify mock of clients.OntologyClient shared by
// the service tests.
type MockOntologyClient struct {
	mock.Mock
}

func (m *MockOntologyClient) FetchTerm(ctx context.Context, id string) (*models.Term, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Term), args.Error(1)
}

func (m *MockOntologyClient) FetchParents(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	args := m.Called(ctx, id, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TermRef), args.Error(1)
}

func (m *MockOntologyClient) FetchChildren(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	args := m.Called(ctx, id, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TermRef), args.Error(1)
}

func (m *MockOntologyClient) FetchAncestors(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	args := m.Called(ctx, id, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TermRef), args.Error(1)
}

func (m *MockOntologyClient) FetchDescendants(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	args := m.Called(ctx, id, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TermRef), args.Error(1)
}

func (m *MockOntologyClient) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ref builds a TermRef with a name derived from the id
func ref(id string) models.TermRef {
	return models.TermRef{ID: id, Name: "term " + id}
}

// refs builds a TermRef slice from ids
func refs(ids ...string) []models.TermRef {
	out := make([]models.TermRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, ref(id))
	}
	return out
}
