// Package relation infers subject-predicate-object triples between known
// entities, in explicit-only, explicit+implicit, generate-all, and
// knowledge-graph-completion modes.
package relation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

type Inferencer struct {
	LLM  llm.Client
	Lang prompts.Language
	Log  *zap.Logger
}

// Options select the inference behavior for one call.
type Options struct {
	// Mode: extract asks for explicitly stated relationships; generate and
	// compendium ask for all relationships, every result tagged implicit.
	Mode model.Mode
	// EnableImplicit adds a second enrichment call seeded with the explicit
	// results. Only meaningful in extract mode.
	EnableImplicit bool
	MaxRelations   int
}

// Infer derives relationships between the given entities. Triples whose
// endpoints are not in the entity set are discarded; accepted triples are
// stamped with both endpoints' types and inferred flags.
func (i *Inferencer) Infer(ctx context.Context, text string, entities []model.LinkedEntity, opts Options) ([]model.Relationship, error) {
	if len(entities) < 2 {
		return nil, nil
	}
	known := knownEntities(entities)
	entityJSON := entityInfoJSON(entities)

	if opts.Mode == model.ModeGenerate || opts.Mode == model.ModeCompendium {
		response, err := i.LLM.Complete(ctx, llm.CompletionRequest{
			System: prompts.AllSystem(i.Lang),
			User:   prompts.AllUser(i.Lang, text, entityJSON, opts.MaxRelations),
		})
		if err != nil {
			return nil, fmt.Errorf("relationship generation failed: %w", err)
		}
		return i.parseTriples(response, model.Implicit, known), nil
	}

	response, err := i.LLM.Complete(ctx, llm.CompletionRequest{
		System: prompts.ExplicitSystem(i.Lang),
		User:   prompts.ExplicitUser(i.Lang, text, entityJSON, opts.MaxRelations),
	})
	if err != nil {
		return nil, fmt.Errorf("explicit relationship extraction failed: %w", err)
	}
	explicit := i.parseTriples(response, model.Explicit, known)

	if !opts.EnableImplicit {
		return explicit, nil
	}

	// Enrichment pass: seed with the explicit results, merge by triple key
	// with the explicit entries never overwritten.
	response, err = i.LLM.Complete(ctx, llm.CompletionRequest{
		System: prompts.ImplicitSystem(i.Lang),
		User:   prompts.ImplicitUser(i.Lang, text, entityJSON, triplesJSON(explicit), opts.MaxRelations),
	})
	if err != nil {
		i.Log.Warn("implicit enrichment failed, keeping explicit set", zap.Error(err))
		return explicit, nil
	}
	implicit := i.parseTriples(response, model.Implicit, known)
	return MergeTriples(explicit, implicit), nil
}

// CompleteRound runs one knowledge-graph-completion call seeded with the
// running relationship set. Only triples whose exact key is new are
// returned.
func (i *Inferencer) CompleteRound(ctx context.Context, text string, entities []model.LinkedEntity, existing []model.Relationship, maxRelations int) ([]model.Relationship, error) {
	if len(entities) < 2 {
		return nil, nil
	}
	known := knownEntities(entities)

	response, err := i.LLM.Complete(ctx, llm.CompletionRequest{
		System: prompts.KGCSystem(i.Lang),
		User:   prompts.KGCUser(i.Lang, text, entityInfoJSON(entities), triplesJSON(existing), maxRelations),
	})
	if err != nil {
		return nil, fmt.Errorf("completion round failed: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.TripleKey()] = true
	}
	var fresh []model.Relationship
	for _, r := range i.parseTriples(response, model.Implicit, known) {
		if seen[r.TripleKey()] {
			continue
		}
		seen[r.TripleKey()] = true
		fresh = append(fresh, r)
	}
	return fresh, nil
}

// MergeTriples combines two relationship sets by exact triple key. Entries
// from primary always win; an implicit duplicate never replaces an explicit
// one.
func MergeTriples(primary, additions []model.Relationship) []model.Relationship {
	seen := make(map[string]bool, len(primary))
	merged := make([]model.Relationship, 0, len(primary)+len(additions))
	for _, r := range primary {
		seen[r.TripleKey()] = true
		merged = append(merged, r)
	}
	for _, r := range additions {
		if seen[r.TripleKey()] {
			continue
		}
		seen[r.TripleKey()] = true
		merged = append(merged, r)
	}
	return merged
}

// parseTriples reads "subject; predicate; object" lines, rejecting triples
// with unknown endpoints or missing parts. Endpoint matching is
// case-insensitive; the canonical entity spelling is written back.
func (i *Inferencer) parseTriples(response string, inferred model.Inferred, known map[string]model.Candidate) []model.Relationship {
	var triples []model.Relationship
	for _, line := range llm.Lines(response) {
		parts := strings.Split(line, ";")
		if len(parts) != 3 {
			continue
		}
		subject := strings.TrimSpace(parts[0])
		predicate := strings.TrimSpace(parts[1])
		object := strings.TrimSpace(parts[2])
		if subject == "" || predicate == "" || object == "" {
			continue
		}

		subjectEntity, okS := known[strings.ToLower(subject)]
		objectEntity, okO := known[strings.ToLower(object)]
		if !okS || !okO {
			i.Log.Debug("discarding triple with unknown endpoint",
				zap.String("subject", subject),
				zap.String("object", object))
			continue
		}

		triples = append(triples, model.Relationship{
			Subject:         subjectEntity.Name,
			Predicate:       predicate,
			Object:          objectEntity.Name,
			Inferred:        inferred,
			SubjectType:     subjectEntity.Type,
			ObjectType:      objectEntity.Type,
			SubjectInferred: inferredOrExplicit(subjectEntity.Inferred),
			ObjectInferred:  inferredOrExplicit(objectEntity.Inferred),
		})
	}
	return triples
}

func inferredOrExplicit(v model.Inferred) model.Inferred {
	if v == "" {
		return model.Explicit
	}
	return v
}

func knownEntities(entities []model.LinkedEntity) map[string]model.Candidate {
	known := make(map[string]model.Candidate, len(entities))
	for _, e := range entities {
		known[strings.ToLower(e.Name)] = e.Candidate
	}
	return known
}

func entityInfoJSON(entities []model.LinkedEntity) string {
	info := make([]map[string]string, 0, len(entities))
	for _, e := range entities {
		info = append(info, map[string]string{
			"entity":      e.Name,
			"entity_type": e.Type,
		})
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

func triplesJSON(relationships []model.Relationship) string {
	type triple struct {
		Subject   string `json:"subject"`
		Predicate string `json:"predicate"`
		Object    string `json:"object"`
		Inferred  string `json:"inferred"`
	}
	out := make([]triple, 0, len(relationships))
	for _, r := range relationships {
		out = append(out, triple{r.Subject, r.Predicate, r.Object, string(r.Inferred)})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
