// Package dedupe consolidates the relationship set in two tiers: a
// model-assisted pass that picks the most relevant predicate per entity
// pair, and a pure string-similarity pass that folds near-identical
// predicates. Both passes preserve first-seen order and are safe to run
// repeatedly.
package dedupe

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

// SimilarityThreshold is the character-level ratio above which two
// predicates of the same entity pair count as variants of each other.
const SimilarityThreshold = 0.85

type Deduplicator struct {
	LLM  llm.Client
	Lang prompts.Language
	Log  *zap.Logger
}

func NewDeduplicator(client llm.Client, lang prompts.Language, log *zap.Logger) *Deduplicator {
	return &Deduplicator{LLM: client, Lang: lang, Log: log}
}

// DropExactDuplicates removes relationships whose triple key was already
// seen, keeping the first occurrence.
func DropExactDuplicates(relationships []model.Relationship) []model.Relationship {
	seen := make(map[string]bool, len(relationships))
	kept := make([]model.Relationship, 0, len(relationships))
	for _, r := range relationships {
		if seen[r.TripleKey()] {
			continue
		}
		seen[r.TripleKey()] = true
		kept = append(kept, r)
	}
	return kept
}

// ConsolidatePairs groups relationships by their unordered entity pair and
// asks the model to pick the most relevant predicate(s) for every pair that
// carries more than one. Pairs with a single relationship pass through
// untouched, and any model failure keeps the pair's full group.
func (d *Deduplicator) ConsolidatePairs(ctx context.Context, relationships []model.Relationship) []model.Relationship {
	if len(relationships) == 0 {
		return relationships
	}

	groups := make(map[string][]model.Relationship)
	var order []string
	for _, r := range relationships {
		key := r.PairKey()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	consolidated := make([]model.Relationship, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			consolidated = append(consolidated, group[0])
			continue
		}
		consolidated = append(consolidated, d.consolidateGroup(ctx, group)...)
	}
	return consolidated
}

type pairPredicate struct {
	Predicate string `json:"predicate"`
	Inferred  string `json:"inferred"`
}

func (d *Deduplicator) consolidateGroup(ctx context.Context, group []model.Relationship) []model.Relationship {
	predicates := make([]pairPredicate, 0, len(group))
	for _, r := range group {
		predicates = append(predicates, pairPredicate{r.Predicate, string(r.Inferred)})
	}
	payload, err := json.Marshal(predicates)
	if err != nil {
		return group
	}

	response, err := d.LLM.Complete(ctx, llm.CompletionRequest{
		System: prompts.DedupeSystem(d.Lang),
		User:   prompts.DedupeUser(d.Lang, group[0].Subject, group[0].Object, string(payload)),
	})
	if err != nil {
		d.Log.Warn("pair consolidation failed, keeping full group",
			zap.String("subject", group[0].Subject),
			zap.String("object", group[0].Object),
			zap.Error(err))
		return group
	}

	chosen, err := llm.DecodeList[pairPredicate](response)
	if err != nil || len(chosen) == 0 {
		d.Log.Warn("unparseable consolidation response, keeping full group",
			zap.String("subject", group[0].Subject),
			zap.String("object", group[0].Object))
		return group
	}

	kept := make([]model.Relationship, 0, len(chosen))
	for _, pick := range chosen {
		if match, ok := matchOriginal(group, pick); ok {
			kept = append(kept, match)
			continue
		}
		// The model reworded the predicate. Keep the pair's endpoints with
		// the new predicate rather than dropping the connection.
		synthesized := group[0]
		synthesized.Predicate = pick.Predicate
		if pick.Inferred != "" {
			synthesized.Inferred = model.Inferred(pick.Inferred)
		}
		kept = append(kept, synthesized)
	}
	return kept
}

// matchOriginal finds the group member whose predicate and inferred flag
// match the model's pick, so the original type stamps survive.
func matchOriginal(group []model.Relationship, pick pairPredicate) (model.Relationship, bool) {
	for _, r := range group {
		if strings.EqualFold(r.Predicate, pick.Predicate) && (pick.Inferred == "" || string(r.Inferred) == pick.Inferred) {
			return r, true
		}
	}
	return model.Relationship{}, false
}

// FilterSimilar folds predicates of the same entity pair whose character
// similarity reaches the threshold, keeping the shortest spelling. The pass
// is pure and idempotent.
func FilterSimilar(relationships []model.Relationship) []model.Relationship {
	kept := make([]model.Relationship, 0, len(relationships))
	for _, r := range relationships {
		folded := false
		for k := range kept {
			if kept[k].PairKey() != r.PairKey() {
				continue
			}
			if predicateSimilarity(kept[k].Predicate, r.Predicate) < SimilarityThreshold {
				continue
			}
			if len(r.Predicate) < len(kept[k].Predicate) {
				kept[k] = r
			}
			folded = true
			break
		}
		if !folded {
			kept = append(kept, r)
		}
	}
	return kept
}

func predicateSimilarity(a, b string) float64 {
	if strings.EqualFold(a, b) {
		return 1
	}
	m := difflib.NewMatcher(strings.Split(strings.ToLower(a), ""), strings.Split(strings.ToLower(b), ""))
	return m.Ratio()
}
