package source

import (
	"strings"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
)

// rawEntity tolerates the alternate key spellings models use before the
// record is adapted onto the canonical Candidate type.
type rawEntity struct {
	Entity       string `json:"entity"`
	Name         string `json:"name"`
	EntityType   string `json:"entity_type"`
	Type         string `json:"type"`
	WikipediaURL string `json:"wikipedia_url"`
	Citation     string `json:"citation"`
	Inferred     string `json:"inferred"`
}

func (r rawEntity) candidate(fallback model.Inferred) (model.Candidate, bool) {
	name := r.Entity
	if name == "" {
		name = r.Name
	}
	if name == "" {
		return model.Candidate{}, false
	}
	typ := r.EntityType
	if typ == "" {
		typ = r.Type
	}
	inferred := fallback
	if r.Inferred == string(model.Implicit) {
		inferred = model.Implicit
	} else if r.Inferred == string(model.Explicit) {
		inferred = model.Explicit
	}
	return model.Candidate{
		Name:         strings.TrimSpace(name),
		Type:         strings.TrimSpace(typ),
		WikipediaURL: strings.TrimSpace(r.WikipediaURL),
		Citation:     strings.TrimSpace(r.Citation),
		Inferred:     inferred,
	}, true
}

// ParseCandidates reads a model response as either a JSON array of entity
// objects or semicolon-delimited lines (name; type; wikipedia_url;
// citation). Malformed items are skipped, an empty response yields an empty
// list.
func ParseCandidates(response string, inferred model.Inferred) []model.Candidate {
	var candidates []model.Candidate

	if raw, err := llm.DecodeList[rawEntity](response); err == nil {
		for _, r := range raw {
			if c, ok := r.candidate(inferred); ok {
				candidates = append(candidates, c)
			}
		}
		return candidates
	}

	for _, line := range llm.Lines(response) {
		parts := strings.Split(line, ";")
		if len(parts) < 2 {
			continue
		}
		c := model.Candidate{
			Name:     strings.TrimSpace(parts[0]),
			Type:     strings.TrimSpace(parts[1]),
			Inferred: inferred,
		}
		if c.Name == "" {
			continue
		}
		if len(parts) > 2 {
			c.WikipediaURL = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			c.Citation = strings.TrimSpace(parts[3])
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// MergeCandidates combines two candidate sets keyed by (name, type),
// case-insensitively. Entries from primary always win over additions.
func MergeCandidates(primary, additions []model.Candidate) []model.Candidate {
	seen := make(map[string]bool, len(primary))
	key := func(c model.Candidate) string {
		return strings.ToLower(c.Name) + "\x00" + strings.ToLower(c.Type)
	}

	merged := make([]model.Candidate, 0, len(primary)+len(additions))
	for _, c := range primary {
		seen[key(c)] = true
		merged = append(merged, c)
	}
	for _, c := range additions {
		if seen[key(c)] {
			continue
		}
		seen[key(c)] = true
		merged = append(merged, c)
	}
	return merged
}
