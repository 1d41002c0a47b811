// Package source produces entity candidates, either extracted from a text or
// generated for a topic.
package source

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/config"
	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

// Source is the shared contract of both entity strategies.
type Source interface {
	Produce(ctx context.Context, input string) ([]model.Candidate, error)
}

// ForMode selects the strategy once at pipeline entry.
func ForMode(mode model.Mode, client llm.Client, cfg config.ExtractionConfig, overrides config.PromptOverrides, log *zap.Logger) Source {
	lang := prompts.Language(cfg.Language)
	switch mode {
	case model.ModeGenerate, model.ModeCompendium:
		return &Generator{
			LLM:            client,
			Lang:           lang,
			MaxEntities:    cfg.MaxEntities,
			AllowedTypes:   cfg.AllowedEntityTypes,
			Comprehensive:  mode == model.ModeCompendium,
			SystemOverride: overrides.Generate,
			Log:            log,
		}
	default:
		return &Extractor{
			LLM:            client,
			Lang:           lang,
			MaxEntities:    cfg.MaxEntities,
			AllowedTypes:   cfg.AllowedEntityTypes,
			SystemOverride: overrides.Extract,
			Log:            log,
		}
	}
}

// Extractor finds entities explicitly present in a text.
type Extractor struct {
	LLM            llm.Client
	Lang           prompts.Language
	MaxEntities    int
	AllowedTypes   string
	SystemOverride string
	Log            *zap.Logger
}

func (e *Extractor) Produce(ctx context.Context, text string) ([]model.Candidate, error) {
	system := e.SystemOverride
	if system == "" {
		system = prompts.ExtractSystem(e.Lang, e.MaxEntities)
	}
	if restricted(e.AllowedTypes) {
		system += "\n\n" + prompts.TypeRestriction(e.Lang, e.AllowedTypes)
	}

	response, err := e.LLM.Complete(ctx, llm.CompletionRequest{
		System: system,
		User:   prompts.ExtractUser(e.Lang, text),
	})
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}

	candidates := ParseCandidates(response, model.Explicit)
	if len(candidates) > e.MaxEntities && e.MaxEntities > 0 {
		candidates = candidates[:e.MaxEntities]
	}
	e.Log.Debug("extracted entities", zap.Int("count", len(candidates)))
	return candidates, nil
}

// Generator produces entities implicitly relevant to a topic.
type Generator struct {
	LLM            llm.Client
	Lang           prompts.Language
	MaxEntities    int
	AllowedTypes   string
	Comprehensive  bool
	SystemOverride string
	Log            *zap.Logger
}

func (g *Generator) Produce(ctx context.Context, topic string) ([]model.Candidate, error) {
	system := g.SystemOverride
	if system == "" {
		if g.Comprehensive {
			system = prompts.CompendiumEntitiesSystem(g.Lang, g.MaxEntities, topic)
		} else {
			system = prompts.GenerateSystem(g.Lang, g.MaxEntities, topic)
		}
	}
	if restricted(g.AllowedTypes) {
		system += "\n\n" + prompts.TypeRestriction(g.Lang, g.AllowedTypes)
	}

	response, err := g.LLM.Complete(ctx, llm.CompletionRequest{
		System: system,
		User:   prompts.GenerateUser(g.Lang, g.MaxEntities),
	})
	if err != nil {
		return nil, fmt.Errorf("entity generation failed: %w", err)
	}

	candidates := ParseCandidates(response, model.Implicit)
	for i := range candidates {
		if candidates[i].Citation == "" {
			candidates[i].Citation = "generated"
		}
	}
	if len(candidates) > g.MaxEntities && g.MaxEntities > 0 {
		candidates = candidates[:g.MaxEntities]
	}
	g.Log.Debug("generated entities", zap.Int("count", len(candidates)))
	return candidates, nil
}

func restricted(allowedTypes string) bool {
	return allowedTypes != "" && !strings.EqualFold(allowedTypes, "auto")
}
