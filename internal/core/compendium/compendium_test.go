package compendium

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

type MockLLM struct {
	Response string
	Err      error
	Requests []llm.CompletionRequest
}

func (m *MockLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func sourcedEntities() []model.LinkedEntity {
	return []model.LinkedEntity{
		{
			Candidate: model.Candidate{Name: "Radium", Type: "Substance"},
			Sources: model.Sources{
				Wikipedia: &model.WikipediaRecord{
					URL:        "https://en.wikipedia.org/wiki/Radium",
					Extract:    "Radium is a chemical element.",
					Categories: []string{"Chemical elements"},
				},
				Wikidata: &model.WikidataRecord{ID: "Q1128", Description: "chemical element"},
			},
		},
		{
			Candidate: model.Candidate{Name: "Marie Curie", Type: "Person"},
			Sources: model.Sources{
				Wikipedia: &model.WikipediaRecord{URL: "https://en.wikipedia.org/wiki/Marie_Curie"},
				DBpedia:   &model.DBpediaRecord{ResourceURI: "http://dbpedia.org/resource/Marie_Curie"},
			},
		},
	}
}

func TestGenerateBuildsPromptFromSources(t *testing.T) {
	mock := &MockLLM{Response: "# Radium\n\nRadium was discovered by Marie Curie (2)."}
	g := &Generator{LLM: mock, Lang: prompts.English, Length: 8000, Log: zap.NewNop()}

	text, refs := g.Generate(context.Background(), "Radium", sourcedEntities())

	assert.Contains(t, text, "Radium was discovered")
	require.Len(t, mock.Requests, 1)
	req := mock.Requests[0]
	assert.Contains(t, req.System, "(1) https://en.wikipedia.org/wiki/Radium")
	assert.Contains(t, req.User, "Radium is a chemical element.")
	assert.Contains(t, req.User, "## Marie Curie")
	assert.Equal(t, 8000, req.MaxTokens)
	require.Len(t, refs, 4)
	assert.Equal(t, "https://www.wikidata.org/wiki/Q1128", refs[1])
}

func TestGenerateFailureReturnsReferences(t *testing.T) {
	mock := &MockLLM{Err: errors.New("model unavailable")}
	g := &Generator{LLM: mock, Lang: prompts.English, Length: 8000, Log: zap.NewNop()}

	text, refs := g.Generate(context.Background(), "Radium", sourcedEntities())
	assert.Empty(t, text)
	assert.Len(t, refs, 4)
}

func TestGenerateEducationalBlockIncluded(t *testing.T) {
	mock := &MockLLM{Response: "text"}
	g := &Generator{LLM: mock, Lang: prompts.English, Length: 4000, Educational: true, Log: zap.NewNop()}

	g.Generate(context.Background(), "Radium", sourcedEntities())
	require.Len(t, mock.Requests, 1)
	assert.Contains(t, mock.Requests[0].System, "educational purposes")
}

func TestReferencesDeduplicatedFirstSeen(t *testing.T) {
	entities := []model.LinkedEntity{
		{Sources: model.Sources{Wikipedia: &model.WikipediaRecord{URL: "https://en.wikipedia.org/wiki/Radium"}}},
		{Sources: model.Sources{Wikipedia: &model.WikipediaRecord{URL: "https://en.wikipedia.org/wiki/Radium"}}},
		{Sources: model.Sources{DBpedia: &model.DBpediaRecord{ResourceURI: "http://dbpedia.org/resource/Radium"}}},
	}
	refs := References(entities)
	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Radium",
		"http://dbpedia.org/resource/Radium",
	}, refs)
}

func TestReferencesEmptyEntities(t *testing.T) {
	assert.Empty(t, References(nil))
}
