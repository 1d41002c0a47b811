package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/config"
	"github.com/entigraph/entigraph/internal/core/linker"
	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

type mockLLM struct {
	queue []string
}

func (m *mockLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if len(m.queue) == 0 {
		return "", nil
	}
	response := m.queue[0]
	m.queue = m.queue[1:]
	return response, nil
}

type fakeWikipedia struct{}

func (fakeWikipedia) Page(ctx context.Context, lang, title string) (*model.WikipediaRecord, error) {
	return &model.WikipediaRecord{
		Label:   title,
		URL:     "https://" + lang + ".wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_"),
		Extract: title + " extract.",
	}, nil
}

func (fakeWikipedia) Search(ctx context.Context, lang, query string) (string, error) {
	return "", nil
}

func (fakeWikipedia) Resolve(ctx context.Context, lang, title string) (string, error) {
	return title, nil
}

func newTestServer(queue []string) *Server {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.LLM.APIKey = "test"
	lk := &linker.Linker{Wikipedia: fakeWikipedia{}, Lang: prompts.English, Log: zap.NewNop()}
	return NewServer(cfg, &mockLLM{queue: queue}, lk, zap.NewNop())
}

func TestHealth(t *testing.T) {
	s := newTestServer(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	s.SetupRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractEndpoint(t *testing.T) {
	s := newTestServer([]string{
		`[
			{"entity": "Marie Curie", "entity_type": "Person", "wikipedia_url": "https://en.wikipedia.org/wiki/Marie_Curie"},
			{"entity": "Radium", "entity_type": "Substance", "wikipedia_url": "https://en.wikipedia.org/wiki/Radium"}
		]`,
		"Marie Curie; discovered; Radium",
	})

	body := `{"text": "Marie Curie discovered radium."}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	s.SetupRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result model.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "extract", result.Mode)
	assert.Len(t, result.Entities, 2)
	assert.Len(t, result.Relationships, 1)
}

func TestExtractRejectsEmptyText(t *testing.T) {
	s := newTestServer(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	s.SetupRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpointUsesGenerateMode(t *testing.T) {
	s := newTestServer([]string{
		`[{"entity": "Radium", "entity_type": "Substance", "wikipedia_url": "https://en.wikipedia.org/wiki/Radium"}]`,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"topic": "Radioactivity"}`))
	req.Header.Set("Content-Type", "application/json")

	s.SetupRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result model.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "generate", result.Mode)
	require.Len(t, result.Entities, 1)
	assert.Equal(t, model.Implicit, result.Entities[0].Details.Inferred)
}

func TestGenerateRejectsMissingTopic(t *testing.T) {
	s := newTestServer(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"topic": ""}`))
	req.Header.Set("Content-Type", "application/json")

	s.SetupRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
