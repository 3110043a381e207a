package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hpo-ontology-gateway/config"
	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"
	"hpo-ontology-gateway/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOntologyClient is a testify mock of the remote ontology source
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

func newTermRouter(client *MockOntologyClient) *mux.Router {
	resolver := services.NewClosureResolver(client, config.DefaultWindowLimits())
	handler := NewTermHandler(client, resolver)

	router := mux.NewRouter()
	router.HandleFunc("/terms/{id}", handler.GetTerm).Methods("GET")
	router.HandleFunc("/terms/{id}/parents", handler.GetParents).Methods("GET")
	router.HandleFunc("/terms/{id}/children", handler.GetChildren).Methods("GET")
	router.HandleFunc("/terms/{id}/ancestors", handler.GetAncestors).Methods("GET")
	router.HandleFunc("/terms/{id}/descendants", handler.GetDescendants).Methods("GET")
	return router
}

func TestGetTerm_ReturnsTermJSON(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchTerm", mock.Anything, "HP:0001166").
		Return(&models.Term{ID: "HP:0001166", Name: "Arachnodactyly"}, nil)

	req := httptest.NewRequest("GET", "/terms/HP:0001166", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var term models.Term
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &term))
	assert.Equal(t, "HP:0001166", term.ID)
	assert.Equal(t, "Arachnodactyly", term.Name)
}

func TestGetTerm_NormalizesShorthandID(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchTerm", mock.Anything, "HP:0001166").
		Return(&models.Term{ID: "HP:0001166", Name: "Arachnodactyly"}, nil)

	req := httptest.NewRequest("GET", "/terms/1166", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	client.AssertCalled(t, "FetchTerm", mock.Anything, "HP:0001166")
}

func TestGetTerm_NotFoundMapsTo404(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchTerm", mock.Anything, "HP:9999999").
		Return(nil, errors.NewNotFoundError(errors.ErrCodeTermNotFound, "no such term", nil))

	req := httptest.NewRequest("GET", "/terms/HP:9999999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, errors.ErrCodeTermNotFound, apiErr.Code)
}

func TestGetParents_WrapsItemsInEnvelope(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchParents", mock.Anything, "HP:0001166", models.Pagination{Max: 20}).
		Return([]models.TermRef{{ID: "HP:0100807", Name: "Long fingers"}}, nil)

	req := httptest.NewRequest("GET", "/terms/HP:0001166/parents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp refListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "HP:0001166", resp.TermID)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "HP:0100807", resp.Items[0].ID)
}

func TestGetAncestors_QueryParamsOverrideDefaultWindow(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchAncestors", mock.Anything, "HP:0001166", models.Pagination{Max: 5, Offset: 2}).
		Return([]models.TermRef{}, nil)

	req := httptest.NewRequest("GET", "/terms/HP:0001166/ancestors?max=5&offset=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	client.AssertExpectations(t)
}

func TestGetAncestors_WindowIsCappedAtSourceMaximum(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchAncestors", mock.Anything, "HP:0001166", models.Pagination{Max: 5000}).
		Return([]models.TermRef{}, nil)

	req := httptest.NewRequest("GET", "/terms/HP:0001166/ancestors?max=999999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	client.AssertExpectations(t)
}

func TestGetDescendants_UsesListingWindow(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchDescendants", mock.Anything, "HP:0001166", models.Pagination{Max: 100}).
		Return([]models.TermRef{}, nil)

	req := httptest.NewRequest("GET", "/terms/HP:0001166/descendants", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp refListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Items)
}

func TestGetChildren_TransportFailureMapsTo502(t *testing.T) {
	client := new(MockOntologyClient)
	router := newTermRouter(client)

	client.On("FetchChildren", mock.Anything, "HP:0001166", mock.Anything).
		Return(nil, errors.NewTransportError(errors.ErrCodeOntologyAPIFailed, "upstream unavailable", nil))

	req := httptest.NewRequest("GET", "/terms/HP:0001166/children", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
