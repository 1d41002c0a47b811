package source

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

// Inferencer runs the optional second pass that proposes implicit entities
// to round out an extracted set.
type Inferencer struct {
	LLM         llm.Client
	Lang        prompts.Language
	MaxEntities int
	Log         *zap.Logger
}

// Complete asks for additional implicit entities and merges them behind the
// known ones. On (name, type) collision the known entity wins; a failed
// model call returns the input set unchanged.
func (i *Inferencer) Complete(ctx context.Context, text string, known []model.Candidate) []model.Candidate {
	names := make([]map[string]string, 0, len(known))
	for _, c := range known {
		names = append(names, map[string]string{"entity": c.Name, "entity_type": c.Type})
	}
	existingJSON, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return known
	}

	response, err := i.LLM.Complete(ctx, llm.CompletionRequest{
		System: prompts.InferenceSystem(i.Lang, i.MaxEntities),
		User:   prompts.InferenceUser(i.Lang, text, string(existingJSON), i.MaxEntities),
	})
	if err != nil {
		i.Log.Warn("entity inference failed, keeping extracted set", zap.Error(err))
		return known
	}

	inferred := ParseCandidates(response, model.Implicit)
	for idx := range inferred {
		inferred[idx].Inferred = model.Implicit
		if inferred[idx].Citation == "" {
			inferred[idx].Citation = "generated"
		}
	}
	i.Log.Debug(fmt.Sprintf("inference proposed %d entities", len(inferred)))
	return MergeCandidates(known, inferred)
}
