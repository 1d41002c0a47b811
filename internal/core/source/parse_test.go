package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/prompts"
)

func TestParseCandidatesJSONWithFences(t *testing.T) {
	response := "```json\n[{\"entity\": \"Radium\", \"entity_type\": \"Substance\"}]\n```"
	candidates := ParseCandidates(response, model.Explicit)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Radium", candidates[0].Name)
	assert.Equal(t, "Substance", candidates[0].Type)
}

func TestParseCandidatesAlternateKeys(t *testing.T) {
	// Some responses use name/type instead of entity/entity_type.
	response := `[{"name": "Radium", "type": "Substance"}]`
	candidates := ParseCandidates(response, model.Explicit)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Radium", candidates[0].Name)
	assert.Equal(t, "Substance", candidates[0].Type)
}

func TestParseCandidatesSkipsMalformedItems(t *testing.T) {
	response := `[{"entity": "Radium", "entity_type": "Substance"}, {"entity_type": "nameless"}]`
	candidates := ParseCandidates(response, model.Explicit)
	require.Len(t, candidates, 1)
}

func TestParseCandidatesSemicolonLines(t *testing.T) {
	response := "Radium; Substance; https://en.wikipedia.org/wiki/Radium; generated\nmalformed line without delimiter\nPolonium; Substance"
	candidates := ParseCandidates(response, model.Implicit)

	require.Len(t, candidates, 2)
	assert.Equal(t, "Radium", candidates[0].Name)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Radium", candidates[0].WikipediaURL)
	assert.Equal(t, "Polonium", candidates[1].Name)
	assert.Empty(t, candidates[1].WikipediaURL)
}

func TestParseCandidatesEmpty(t *testing.T) {
	assert.Empty(t, ParseCandidates("", model.Explicit))
}

func TestParseCandidatesInferredOverride(t *testing.T) {
	response := `[{"entity": "Radium", "entity_type": "Substance", "inferred": "implicit"}]`
	candidates := ParseCandidates(response, model.Explicit)
	require.Len(t, candidates, 1)
	assert.Equal(t, model.Implicit, candidates[0].Inferred)
}

func TestMergeCandidatesExplicitWins(t *testing.T) {
	explicit := []model.Candidate{{Name: "Radium", Type: "Substance", Inferred: model.Explicit}}
	implicit := []model.Candidate{
		{Name: "radium", Type: "substance", Inferred: model.Implicit},
		{Name: "Polonium", Type: "Substance", Inferred: model.Implicit},
	}

	merged := MergeCandidates(explicit, implicit)
	require.Len(t, merged, 2)
	assert.Equal(t, model.Explicit, merged[0].Inferred)
	assert.Equal(t, "Polonium", merged[1].Name)
}

func TestInferencerCompletesSet(t *testing.T) {
	mock := &MockLLM{Response: `[{"entity": "Polonium", "entity_type": "Substance"}]`}
	i := &Inferencer{LLM: mock, Lang: prompts.English, MaxEntities: 5, Log: zap.NewNop()}

	known := []model.Candidate{{Name: "Radium", Type: "Substance", Inferred: model.Explicit}}
	out := i.Complete(context.Background(), "radioactive elements", known)

	require.Len(t, out, 2)
	assert.Equal(t, model.Implicit, out[1].Inferred)
	assert.Equal(t, "generated", out[1].Citation)
}

func TestInferencerFailureKeepsKnownSet(t *testing.T) {
	mock := &MockLLM{Err: errors.New("boom")}
	i := &Inferencer{LLM: mock, Lang: prompts.English, MaxEntities: 5, Log: zap.NewNop()}

	known := []model.Candidate{{Name: "Radium", Type: "Substance", Inferred: model.Explicit}}
	out := i.Complete(context.Background(), "text", known)
	assert.Equal(t, known, out)
}
