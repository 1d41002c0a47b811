package model

import "strings"

// Relationship is one subject-predicate-object triple, stamped with the
// endpoint entities' types and inferred flags.
type Relationship struct {
	Subject         string   `json:"subject"`
	Predicate       string   `json:"predicate"`
	Object          string   `json:"object"`
	Inferred        Inferred `json:"inferred"`
	SubjectType     string   `json:"subject_type,omitempty"`
	ObjectType      string   `json:"object_type,omitempty"`
	SubjectInferred Inferred `json:"subject_inferred,omitempty"`
	ObjectInferred  Inferred `json:"object_inferred,omitempty"`
}

// TripleKey is the exact identity of a relationship, case-insensitive on all
// three parts.
func (r Relationship) TripleKey() string {
	return strings.ToLower(r.Subject) + "\x00" + strings.ToLower(r.Predicate) + "\x00" + strings.ToLower(r.Object)
}

// PairKey groups relationships by their two endpoints regardless of
// direction. Directionality lives in the predicate text, not in the group.
func (r Relationship) PairKey() string {
	a := strings.ToLower(r.Subject)
	b := strings.ToLower(r.Object)
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}
