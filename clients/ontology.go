package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hpo-ontology-gateway/config"
	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"
)

// OntologyClient defines the interface for remote ontology operations.
// Every call reflects the source's live content at call time; nothing is
// cached between calls.
type OntologyClient interface {
	// FetchTerm retrieves the full record for one term.
	FetchTerm(ctx context.Context, id string) (*models.Term, error)

	// FetchParents retrieves the direct parents of a term.
	FetchParents(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error)

	// FetchChildren retrieves the direct children of a term.
	FetchChildren(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error)

	// FetchAncestors retrieves the ancestor closure of a term, ordered
	// nearest ancestor first.
	FetchAncestors(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error)

	// FetchDescendants retrieves the descendant closure of a term. The
	// source defines no meaningful order for descendants.
	FetchDescendants(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error)

	// HealthCheck verifies that the ontology source is reachable.
	HealthCheck(ctx context.Context) error
}

// hpoRootTerm is the hierarchy root, used only for health probing.
const hpoRootTerm = "HP:0000001"

// ontologyHTTPClient implements OntologyClient against the HPO REST API
type ontologyHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOntologyClient creates a new HTTP ontology client
func NewOntologyClient(cfg *config.OntologyConfig) OntologyClient {
	return &ontologyHTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// OntologyError represents an error payload from the ontology API
type OntologyError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *OntologyError) Error() string {
	return fmt.Sprintf("ontology error [%d]: %s", e.Status, e.Message)
}

// termPayload is the wire shape of a single-term response
type termPayload struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Definition     *string          `json:"definition"`
	Comment        *string          `json:"comment"`
	Synonyms       []string         `json:"synonyms"`
	Xrefs          []string         `json:"xrefs"`
	AlternativeIDs []string         `json:"alternative_ids"`
	IsObsolete     bool             `json:"is_obsolete"`
	ReplacedBy     *string          `json:"replaced_by"`
	Parents        []models.TermRef `json:"parents"`
	Children       []models.TermRef `json:"children"`
}

// FetchTerm retrieves a full term record from the source
func (c *ontologyHTTPClient) FetchTerm(ctx context.Context, id string) (*models.Term, error) {
	endpoint := "/terms/" + url.PathEscape(id)

	var payload termPayload
	if err := c.doRequest(ctx, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	return &models.Term{
		ID:             payload.ID,
		Name:           payload.Name,
		Definition:     payload.Definition,
		Comment:        payload.Comment,
		Synonyms:       payload.Synonyms,
		Xrefs:          payload.Xrefs,
		AlternativeIDs: payload.AlternativeIDs,
		IsObsolete:     payload.IsObsolete,
		ReplacedBy:     payload.ReplacedBy,
		Parents:        payload.Parents,
		Children:       payload.Children,
	}, nil
}

// FetchParents retrieves direct parents
func (c *ontologyHTTPClient) FetchParents(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	return c.fetchRefs(ctx, "/terms/"+url.PathEscape(id)+"/parents", window)
}

// FetchChildren retrieves direct children
func (c *ontologyHTTPClient) FetchChildren(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	return c.fetchRefs(ctx, "/terms/"+url.PathEscape(id)+"/children", window)
}

// FetchAncestors retrieves the ancestor closure, nearest ancestor first
func (c *ontologyHTTPClient) FetchAncestors(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	return c.fetchRefs(ctx, "/terms/"+url.PathEscape(id)+"/ancestors", window)
}

// FetchDescendants retrieves the descendant closure
func (c *ontologyHTTPClient) FetchDescendants(ctx context.Context, id string, window models.Pagination) ([]models.TermRef, error) {
	return c.fetchRefs(ctx, "/terms/"+url.PathEscape(id)+"/descendants", window)
}

// HealthCheck probes the source by fetching the hierarchy root
func (c *ontologyHTTPClient) HealthCheck(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	_, err := c.FetchTerm(ctx, hpoRootTerm)
	return err
}

// fetchRefs retrieves a windowed TermRef sequence from a hierarchy endpoint.
// An empty sequence is a valid, successful result.
func (c *ontologyHTTPClient) fetchRefs(ctx context.Context, endpoint string, window models.Pagination) ([]models.TermRef, error) {
	params := map[string]string{
		"max":    strconv.Itoa(window.Max),
		"offset": strconv.Itoa(window.Offset),
	}

	var refs []models.TermRef
	if err := c.doRequest(ctx, endpoint, params, &refs); err != nil {
		return nil, err
	}

	if refs == nil {
		refs = []models.TermRef{}
	}
	return refs, nil
}

// doRequest performs a single HTTP GET against the ontology API. There is
// deliberately no retry wrapper: a failed fetch is reported once, and the
// caller decides whether the failure is load-bearing.
func (c *ontologyHTTPClient) doRequest(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	requestURL := c.baseURL + endpoint + buildQueryParams(params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeSerializationError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errors.NewTimeoutError(errors.ErrCodeNetworkTimeout,
				fmt.Sprintf("ontology source timed out: %v", err), err)
		}
		return errors.NewTransportError(errors.ErrCodeOntologyAPIFailed,
			fmt.Sprintf("ontology source unreachable: %v", err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError(errors.ErrCodeOntologyAPIFailed, "failed to read response body", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return errors.NewNotFoundError(errors.ErrCodeTermNotFound,
			"ontology source has no such term", remoteError(resp.StatusCode, respBody))
	}

	if resp.StatusCode >= 400 {
		return errors.NewTransportError(errors.ErrCodeOntologyAPIFailed,
			fmt.Sprintf("ontology source returned HTTP %d", resp.StatusCode),
			remoteError(resp.StatusCode, respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.NewTransportError(errors.ErrCodeOntologyAPIFailed,
				"ontology source returned a malformed payload", err)
		}
	}

	return nil
}

// remoteError extracts a structured error from a response body when the
// source volunteers one, falling back to the raw body text.
func remoteError(status int, body []byte) error {
	var ontErr OntologyError
	if err := json.Unmarshal(body, &ontErr); err == nil && ontErr.Message != "" {
		ontErr.Status = status
		return &ontErr
	}
	return &OntologyError{Status: status, Message: strings.TrimSpace(string(body))}
}

// isTimeout reports whether a transport error was a timeout
func isTimeout(err error) bool {
	type timeout interface {
		Timeout() bool
	}

	if err == context.DeadlineExceeded {
		return true
	}
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Timeout()
	}
	if t, ok := err.(timeout); ok {
		return t.Timeout()
	}
	return false
}

// buildQueryParams builds a query string from a parameter map
func buildQueryParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	values := url.Values{}
	for key, value := range params {
		values.Add(key, value)
	}

	return "?" + values.Encode()
}
