package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"
	"hpo-ontology-gateway/services"
)

// AnalysisHandler serves the aggregate hierarchy operations: path
// reconstruction, pair comparison, statistics and batch retrieval.
type AnalysisHandler struct {
	path         *services.PathService
	relationship *services.RelationshipService
	stats        *services.StatsService
	batch        *services.BatchService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(path *services.PathService, relationship *services.RelationshipService,
	stats *services.StatsService, batch *services.BatchService) *AnalysisHandler {
	return &AnalysisHandler{
		path:         path,
		relationship: relationship,
		stats:        stats,
		batch:        batch,
	}
}

// GetTermPath handles GET /terms/{id}/path
func (h *AnalysisHandler) GetTermPath(w http.ResponseWriter, r *http.Request) {
	termID, err := termIDFromRequest(r)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	path, err := h.path.ReconstructPath(r.Context(), termID)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, path)
}

// GetTermStats handles GET /terms/{id}/stats
func (h *AnalysisHandler) GetTermStats(w http.ResponseWriter, r *http.Request) {
	termID, err := termIDFromRequest(r)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	stats, err := h.stats.GetTermStats(r.Context(), termID)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, stats)
}

// CompareTerms handles POST /compare
func (h *AnalysisHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppErrorResponse(w, errors.NewValidationError(errors.ErrCodeInvalidInput,
			"request body must be valid JSON", err))
		return
	}

	if strings.TrimSpace(req.FirstID) == "" || strings.TrimSpace(req.SecondID) == "" {
		writeAppErrorResponse(w, errors.NewValidationError(errors.ErrCodeMissingField,
			"first_id and second_id are required", nil))
		return
	}

	result, err := h.relationship.CompareTerms(r.Context(), req.FirstID, req.SecondID)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// BatchGetTerms handles POST /batch
func (h *AnalysisHandler) BatchGetTerms(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppErrorResponse(w, errors.NewValidationError(errors.ErrCodeInvalidInput,
			"request body must be valid JSON", err))
		return
	}

	result, err := h.batch.GetTerms(r.Context(), req.IDs)
	if err != nil {
		writeAppErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}
