// Package core wires the pipeline stages together: entity sourcing, linking,
// relationship inference, deduplication, completion rounds, and packaging.
// Execution is single-threaded and sequential; every suspension point is a
// network call behind a collaborator interface.
package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/config"
	"github.com/entigraph/entigraph/internal/core/compendium"
	"github.com/entigraph/entigraph/internal/core/dedupe"
	"github.com/entigraph/entigraph/internal/core/linker"
	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/core/relation"
	"github.com/entigraph/entigraph/internal/core/segment"
	"github.com/entigraph/entigraph/internal/core/source"
	"github.com/entigraph/entigraph/internal/core/stats"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

type Pipeline struct {
	Config config.Config
	Linker *linker.Linker
	Log    *zap.Logger

	mode       model.Mode
	source     source.Source
	inferencer *source.Inferencer
	relations  *relation.Inferencer
	dedupe     *dedupe.Deduplicator
	compendium *compendium.Generator
}

func NewPipeline(cfg config.Config, client llm.Client, lk *linker.Linker, log *zap.Logger) *Pipeline {
	lang := prompts.Language(cfg.Extraction.Language)
	// The mode string is checked by config validation; an unparseable value
	// here falls back to extract.
	mode, _ := model.ParseMode(cfg.Extraction.Mode)
	return &Pipeline{
		Config: cfg,
		Linker: lk,
		Log:    log,
		mode:   mode,
		source: source.ForMode(mode, client, cfg.Extraction, cfg.Prompts, log),
		inferencer: &source.Inferencer{
			LLM:         client,
			Lang:        lang,
			MaxEntities: cfg.Extraction.MaxEntities,
			Log:         log,
		},
		relations:  &relation.Inferencer{LLM: client, Lang: lang, Log: log},
		dedupe:     dedupe.NewDeduplicator(client, lang, log),
		compendium: &compendium.Generator{
			LLM:         client,
			Lang:        lang,
			Length:      cfg.Compendium.Length,
			Educational: cfg.Compendium.Educational,
			Log:         log,
		},
	}
}

// Run executes the pipeline for one input, which is a document in extract
// mode and a topic otherwise.
func (p *Pipeline) Run(ctx context.Context, input string) (*model.Result, error) {
	var (
		linked        []model.LinkedEntity
		relationships []model.Relationship
		err           error
	)
	if p.Config.Chunking.Enabled && p.mode == model.ModeExtract {
		linked, relationships, err = p.runChunked(ctx, input)
	} else {
		linked, relationships, err = p.runOnce(ctx, input)
	}
	if err != nil {
		return nil, err
	}
	if len(linked) == 0 {
		p.Log.Warn("no entities found, returning empty result")
		return p.emptyResult(), nil
	}

	if p.Config.Relations.Enabled {
		relationships = p.deduplicate(ctx, relationships)
		relationships = p.completionRounds(ctx, input, linked, relationships)
	}

	result := p.packageResult(input, linked, relationships)
	if p.mode == model.ModeCompendium || p.Config.Compendium.Enabled {
		result.Compendium, result.References = p.compendium.Generate(ctx, input, linked)
	}
	return result, nil
}

// runOnce is the single-pass flow: source, optional entity inference, link,
// optional relationship inference.
func (p *Pipeline) runOnce(ctx context.Context, input string) ([]model.LinkedEntity, []model.Relationship, error) {
	candidates, err := p.source.Produce(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("entity sourcing failed: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil, nil
	}
	if p.Config.Extraction.EnableEntityInference {
		candidates = p.inferencer.Complete(ctx, input, candidates)
	}

	linked := p.Linker.Link(ctx, candidates)
	relationships := p.inferRelations(ctx, input, linked)
	return linked, relationships, nil
}

// runChunked splits the document, runs the per-chunk flow independently, and
// merges the partial results. Entities merge by identity key with the first
// occurrence kept; relationships merge by exact triple key with explicit
// entries never displaced by implicit ones.
func (p *Pipeline) runChunked(ctx context.Context, input string) ([]model.LinkedEntity, []model.Relationship, error) {
	chunks := segment.Split(input, p.Config.Chunking.Size, p.Config.Chunking.Overlap)
	p.Log.Info("processing chunked document", zap.Int("chunks", len(chunks)))

	var merged []model.LinkedEntity
	seen := make(map[string]bool)
	var relationships []model.Relationship

	for i, chunk := range chunks {
		linked, rels, err := p.runOnce(ctx, chunk)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk %d: %w", i+1, err)
		}
		for _, e := range linked {
			if seen[e.Key()] {
				continue
			}
			seen[e.Key()] = true
			merged = append(merged, e)
		}
		relationships = mergeByTripleKey(relationships, rels)
	}
	return merged, relationships, nil
}

// mergeByTripleKey adds rels to the running set, keeping one record per
// exact triple. On collision an explicit record replaces an implicit one,
// never the reverse.
func mergeByTripleKey(existing, additions []model.Relationship) []model.Relationship {
	index := make(map[string]int, len(existing))
	for i, r := range existing {
		index[r.TripleKey()] = i
	}
	for _, r := range additions {
		i, ok := index[r.TripleKey()]
		if !ok {
			index[r.TripleKey()] = len(existing)
			existing = append(existing, r)
			continue
		}
		if existing[i].Inferred == model.Implicit && r.Inferred == model.Explicit {
			existing[i] = r
		}
	}
	return existing
}

func (p *Pipeline) inferRelations(ctx context.Context, input string, linked []model.LinkedEntity) []model.Relationship {
	if !p.Config.Relations.Enabled {
		return nil
	}
	relationships, err := p.relations.Infer(ctx, input, linked, relation.Options{
		Mode:           p.mode,
		EnableImplicit: p.Config.Relations.EnableInference,
		MaxRelations:   p.Config.Relations.MaxRelations,
	})
	if err != nil {
		p.Log.Warn("relationship inference failed, continuing without", zap.Error(err))
		return nil
	}
	return relationships
}

// deduplicate runs the documented sequence: semantic consolidation, exact
// triple dedup, consolidation again, then the fuzzy predicate filter.
func (p *Pipeline) deduplicate(ctx context.Context, relationships []model.Relationship) []model.Relationship {
	if len(relationships) == 0 {
		return relationships
	}
	before := len(relationships)
	relationships = p.dedupe.ConsolidatePairs(ctx, relationships)
	relationships = dedupe.DropExactDuplicates(relationships)
	relationships = p.dedupe.ConsolidatePairs(ctx, relationships)
	relationships = dedupe.FilterSimilar(relationships)
	p.Log.Info("relationship deduplication finished",
		zap.Int("before", before),
		zap.Int("after", len(relationships)))
	return relationships
}

// completionRounds runs the fixed number of completion rounds. A round that
// finds nothing new does not stop the loop; the bound is the round count.
// Rounds only guarantee exact-key uniqueness, so when they added anything the
// dedup passes run again over the merged set to fold paraphrased predicates.
func (p *Pipeline) completionRounds(ctx context.Context, input string, linked []model.LinkedEntity, relationships []model.Relationship) []model.Relationship {
	if !p.Config.Relations.EnableKGC {
		return relationships
	}
	added := 0
	for round := 1; round <= p.Config.Relations.KGCRounds; round++ {
		fresh, err := p.relations.CompleteRound(ctx, input, linked, relationships, p.Config.Relations.MaxRelations)
		if err != nil {
			p.Log.Warn("completion round failed", zap.Int("round", round), zap.Error(err))
			continue
		}
		p.Log.Info("completion round finished", zap.Int("round", round), zap.Int("new", len(fresh)))
		relationships = append(relationships, fresh...)
		added += len(fresh)
	}
	if added > 0 {
		relationships = p.dedupe.ConsolidatePairs(ctx, relationships)
		relationships = dedupe.FilterSimilar(relationships)
	}
	return relationships
}

func (p *Pipeline) emptyResult() *model.Result {
	return &model.Result{
		RunID:      uuid.New().String(),
		Mode:       p.mode.String(),
		Statistics: stats.Compute(nil, nil),
	}
}

func (p *Pipeline) packageResult(input string, linked []model.LinkedEntity, relationships []model.Relationship) *model.Result {
	return &model.Result{
		RunID:         uuid.New().String(),
		Mode:          p.mode.String(),
		Entities:      p.packageEntities(input, linked),
		Relationships: relationships,
		Statistics:    stats.Compute(linked, relationships),
	}
}
