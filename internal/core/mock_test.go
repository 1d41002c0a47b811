package core

import (
	"context"
	"errors"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/llm"
)

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
	Requests      []llm.CompletionRequest
}

func (m *MockLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		response := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return response, nil
	}
	return m.Response, nil
}

// fakeWikipedia serves canned pages keyed by lang:title. Unknown titles
// behave like missing articles.
type fakeWikipedia struct {
	pages    map[string]*model.WikipediaRecord
	searches map[string]string
}

func (f *fakeWikipedia) Page(ctx context.Context, lang, title string) (*model.WikipediaRecord, error) {
	if record, ok := f.pages[lang+":"+title]; ok {
		return record, nil
	}
	return &model.WikipediaRecord{}, nil
}

func (f *fakeWikipedia) Search(ctx context.Context, lang, query string) (string, error) {
	return f.searches[lang+":"+query], nil
}

func (f *fakeWikipedia) Resolve(ctx context.Context, lang, title string) (string, error) {
	return title, nil
}

type fakeWikidata struct {
	entities map[string]*model.WikidataRecord
}

func (f *fakeWikidata) Entity(ctx context.Context, id string) (*model.WikidataRecord, error) {
	if record, ok := f.entities[id]; ok {
		return record, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeWikidata) SearchID(ctx context.Context, lang, name string) (string, error) {
	return "", nil
}
