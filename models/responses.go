package models

// Response structures for the aggregate hierarchy queries

// TermPath is the reconstructed root-to-term chain for one term.
// Nodes[0] is the root-most ancestor and the last node is the queried term
// itself. Partial is set when the ancestor closure filled its window, which
// means the chain may be truncated.
type TermPath struct {
	Term    TermRef   `json:"term"`
	Nodes   []TermRef `json:"nodes"`
	Depth   int       `json:"depth"`
	Partial bool      `json:"partial"`
}

// RelationshipResult is the classification of a term pair. CommonAncestors
// follows the second term's ancestor order and holds the full computed set,
// not a display-capped one.
type RelationshipResult struct {
	First           TermRef             `json:"first"`
	Second          TermRef             `json:"second"`
	Verdict         RelationshipVerdict `json:"verdict"`
	CommonAncestors []TermRef           `json:"common_ancestors"`
}

// TermStats aggregates hierarchy and metadata counts for one term.
// DepthFromRoot equals the ancestor count, an approximation that ignores
// the fact that a DAG node can have root paths of different lengths.
// FailedFetches records which non-load-bearing fetches degraded to zero.
type TermStats struct {
	Term             TermRef  `json:"term"`
	AncestorCount    int      `json:"ancestor_count"`
	ParentCount      int      `json:"parent_count"`
	ChildCount       int      `json:"child_count"`
	DescendantCount  int      `json:"descendant_count"`
	DepthFromRoot    int      `json:"depth_from_root"`
	SynonymCount     int      `json:"synonym_count"`
	XrefCount        int      `json:"xref_count"`
	AlternativeCount int      `json:"alternative_id_count"`
	IsObsolete       bool     `json:"is_obsolete"`
	Partial          bool     `json:"partial"`
	FailedFetches    []string `json:"failed_fetches,omitempty"`
}

// BatchResult partitions the per-id outcomes of a batch retrieval.
// Outcomes holds every per-id result in the caller's input order; both
// partitions preserve that order as well.
type BatchResult struct {
	Requested int            `json:"requested"`
	Outcomes  []BatchOutcome `json:"outcomes"`
	Successes []BatchOutcome `json:"successes"`
	Failures  []BatchOutcome `json:"failures"`
}

// APIError represents standardized error response
type APIError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// CompareRequest is the body of a term comparison call.
type CompareRequest struct {
	FirstID  string `json:"first_id"`
	SecondID string `json:"second_id"`
}

// BatchRequest is the body of a batch term retrieval call.
type BatchRequest struct {
	IDs []string `json:"ids"`
}
