package handlers

import (
	"context"
	"net/http"

	"hpo-ontology-gateway/clients"
	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"
	"hpo-ontology-gateway/services"

	"github.com/gorilla/mux"
)

// TermHandler serves the single-term and single-hop hierarchy endpoints
type TermHandler struct {
	client   clients.OntologyClient
	resolver *services.ClosureResolver
}

// NewTermHandler creates a new term handler
func NewTermHandler(client clients.OntologyClient, resolver *services.ClosureResolver) *TermHandler {
	return &TermHandler{
		client:   client,
		resolver: resolver,
	}
}

// termIDFromRequest extracts and normalizes the id path variable. The
// normalized form may still be rejected by the source; only a missing id is
// a caller error here.
func termIDFromRequest(r *http.Request) (string, error) {
	raw := mux.Vars(r)["id"]
	if raw == "" {
		return "", errors.NewValidationError(errors.ErrCodeMissingField, "term id is required", nil)
	}
	return services.NormalizeTermID(raw), nil
}

// GetTerm handles GET /terms/{id}
func (h *TermHandler) GetTerm(w http.ResponseWriter, r *http.Request) {
	termID, err := termIDFromRequest(r)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	term, err := h.client.FetchTerm(r.Context(), termID)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, term)
}

// refListResponse is the envelope for hierarchy listings
type refListResponse struct {
	TermID string           `json:"term_id"`
	Count  int              `json:"count"`
	Items  []models.TermRef `json:"items"`
}

// refFetcher is one resolver listing operation
type refFetcher func(ctx context.Context, id string, window *models.Pagination) ([]models.TermRef, error)

// serveRefs runs one hierarchy listing request through the resolver.
// An empty listing is a successful response, not an error.
func (h *TermHandler) serveRefs(w http.ResponseWriter, r *http.Request, fetch refFetcher) {
	termID, err := termIDFromRequest(r)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	refs, err := fetch(r.Context(), termID, parseWindow(r))
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, refListResponse{
		TermID: termID,
		Count:  len(refs),
		Items:  refs,
	})
}

// GetParents handles GET /terms/{id}/parents
func (h *TermHandler) GetParents(w http.ResponseWriter, r *http.Request) {
	h.serveRefs(w, r, h.resolver.Parents)
}

// GetChildren handles GET /terms/{id}/children
func (h *TermHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	h.serveRefs(w, r, h.resolver.Children)
}

// GetAncestors handles GET /terms/{id}/ancestors
func (h *TermHandler) GetAncestors(w http.ResponseWriter, r *http.Request) {
	h.serveRefs(w, r, h.resolver.Ancestors)
}

// GetDescendants handles GET /terms/{id}/descendants
func (h *TermHandler) GetDescendants(w http.ResponseWriter, r *http.Request) {
	h.serveRefs(w, r, h.resolver.DescendantList)
}
