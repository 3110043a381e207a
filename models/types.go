package models

// TermRef is the minimal identity of an ontology term: canonical id plus
// display label. Hierarchy listings, path nodes and common-ancestor entries
// all carry TermRefs rather than full records.
type TermRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Term is the full record returned by a single-term fetch. Optional metadata
// fields are pointers so that "absent" and "empty" stay distinguishable.
// A Term is never mutated after construction; every fetch yields a fresh value.
type Term struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Definition     *string   `json:"definition,omitempty"`
	Comment        *string   `json:"comment,omitempty"`
	Synonyms       []string  `json:"synonyms,omitempty"`
	Xrefs          []string  `json:"xrefs,omitempty"`
	AlternativeIDs []string  `json:"alternative_ids,omitempty"`
	IsObsolete     bool      `json:"is_obsolete"`
	ReplacedBy     *string   `json:"replaced_by,omitempty"`
	Parents        []TermRef `json:"parents,omitempty"`
	Children       []TermRef `json:"children,omitempty"`
}

// Pagination is a requested slice of an ordered result sequence. The source
// may return fewer than Max items even when more exist; end-of-window is
// detected by length, not by an explicit flag.
type Pagination struct {
	Max    int `json:"max"`
	Offset int `json:"offset"`
}

// RelationshipVerdict classifies how two terms relate in the hierarchy.
type RelationshipVerdict string

const (
	// VerdictFirstIsDescendant means the first term lies below the second.
	VerdictFirstIsDescendant RelationshipVerdict = "first_is_descendant_of_second"
	// VerdictSecondIsDescendant means the second term lies below the first.
	VerdictSecondIsDescendant RelationshipVerdict = "second_is_descendant_of_first"
	// VerdictCommonAncestors means the terms share ancestors but neither
	// contains the other.
	VerdictCommonAncestors RelationshipVerdict = "related_via_common_ancestors"
	// VerdictUnrelated means the ancestor closures are disjoint.
	VerdictUnrelated RelationshipVerdict = "unrelated"
)

// BatchOutcome is the per-id result of a batch retrieval. Exactly one of
// Term and Failure is set, according to Success.
type BatchOutcome struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Term    *Term  `json:"term,omitempty"`
	Failure string `json:"failure,omitempty"`
}
