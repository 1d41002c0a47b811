// Package compendium writes a cited long-form text about the run's topic,
// grounded in the knowledge-base records collected for the entities.
package compendium

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

type Generator struct {
	LLM  llm.Client
	Lang prompts.Language
	// Length is the target text size in characters.
	Length      int
	Educational bool
	Log         *zap.Logger
}

// Generate produces the compendium text plus the numbered reference list the
// citations point into. A model failure degrades to an empty text; the
// references are returned either way.
func (g *Generator) Generate(ctx context.Context, topic string, entities []model.LinkedEntity) (string, []string) {
	references := References(entities)

	response, err := g.LLM.Complete(ctx, llm.CompletionRequest{
		System:    prompts.CompendiumSystem(g.Lang, topic, g.Length, references, g.Educational),
		User:      g.userPrompt(topic, entities),
		MaxTokens: g.Length,
	})
	if err != nil {
		g.Log.Warn("compendium generation failed", zap.String("topic", topic), zap.Error(err))
		return "", references
	}
	return strings.TrimSpace(response), references
}

func (g *Generator) userPrompt(topic string, entities []model.LinkedEntity) string {
	var b strings.Builder
	if g.Lang == prompts.German {
		fmt.Fprintf(&b, "Thema: %s\n\n### Wissen aus Quellen:\n", topic)
	} else {
		fmt.Fprintf(&b, "Topic: %s\n\n### Knowledge from sources:\n", topic)
	}
	b.WriteString(knowledgeContext(entities))
	return b.String()
}

// knowledgeContext flattens the entity source records into a text block the
// model can draw on while writing.
func knowledgeContext(entities []model.LinkedEntity) string {
	var b strings.Builder
	for _, e := range entities {
		fmt.Fprintf(&b, "\n## %s\n", e.Name)
		if wp := e.Sources.Wikipedia; wp != nil {
			if wp.Extract != "" {
				fmt.Fprintf(&b, "%s\n", wp.Extract)
			}
			if wp.URL != "" {
				fmt.Fprintf(&b, "Source: %s\n", wp.URL)
			}
			if len(wp.Categories) > 0 {
				fmt.Fprintf(&b, "Categories: %s\n", strings.Join(wp.Categories, ", "))
			}
		}
		if wd := e.Sources.Wikidata; wd != nil {
			if wd.Description != "" {
				fmt.Fprintf(&b, "Wikidata (%s): %s\n", wd.ID, wd.Description)
			}
			if len(wd.Types) > 0 {
				fmt.Fprintf(&b, "Types: %s\n", strings.Join(wd.Types, ", "))
			}
		}
		if db := e.Sources.DBpedia; db != nil {
			if db.Abstract != "" {
				fmt.Fprintf(&b, "%s\n", db.Abstract)
			}
			if db.ResourceURI != "" {
				fmt.Fprintf(&b, "DBpedia: %s\n", db.ResourceURI)
			}
		}
	}
	return b.String()
}

// References collects the source URLs the citations number, deduplicated in
// first-seen order.
func References(entities []model.LinkedEntity) []string {
	seen := make(map[string]bool)
	var refs []string
	add := func(ref string) {
		if ref == "" || seen[ref] {
			return
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	for _, e := range entities {
		if wp := e.Sources.Wikipedia; wp != nil {
			add(wp.URL)
		}
		if wd := e.Sources.Wikidata; wd != nil {
			if wd.URL != "" {
				add(wd.URL)
			} else if wd.ID != "" {
				add("https://www.wikidata.org/wiki/" + wd.ID)
			}
		}
		if db := e.Sources.DBpedia; db != nil {
			add(db.ResourceURI)
		}
	}
	return refs
}
