package linker

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

type fakeWikipedia struct {
	pages     map[string]*model.WikipediaRecord
	searches  map[string]string
	redirects map[string]string
	pageErr   error
}

func (f *fakeWikipedia) Page(ctx context.Context, lang, title string) (*model.WikipediaRecord, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	if record, ok := f.pages[lang+":"+title]; ok {
		return record, nil
	}
	return &model.WikipediaRecord{}, nil
}

func (f *fakeWikipedia) Search(ctx context.Context, lang, query string) (string, error) {
	return f.searches[lang+":"+query], nil
}

func (f *fakeWikipedia) Resolve(ctx context.Context, lang, title string) (string, error) {
	if to, ok := f.redirects[lang+":"+title]; ok {
		return to, nil
	}
	return title, nil
}

type fakeWikidata struct {
	ids      map[string]string
	entities map[string]*model.WikidataRecord
}

func (f *fakeWikidata) Entity(ctx context.Context, id string) (*model.WikidataRecord, error) {
	if record, ok := f.entities[id]; ok {
		return record, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeWikidata) SearchID(ctx context.Context, lang, name string) (string, error) {
	return f.ids[name], nil
}

type fakeDBpedia struct {
	records map[string]*model.DBpediaRecord
	err     error
}

func (f *fakeDBpedia) Lookup(ctx context.Context, title string) (*model.DBpediaRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if record, ok := f.records[title]; ok {
		return record, nil
	}
	return &model.DBpediaRecord{}, nil
}

func (f *fakeDBpedia) ResourceURI(title string) string {
	return "http://dbpedia.org/resource/" + title
}

type mockLLM struct {
	response string
	err      error
}

func (m *mockLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func radiumPage() *model.WikipediaRecord {
	return &model.WikipediaRecord{
		Label:      "Radium",
		URL:        "https://en.wikipedia.org/wiki/Radium",
		Extract:    "Radium is a chemical element.",
		WikidataID: "Q1128",
	}
}

func TestLinkUsesValidCandidateURL(t *testing.T) {
	wiki := &fakeWikipedia{pages: map[string]*model.WikipediaRecord{"en:Radium": radiumPage()}}
	l := &Linker{Wikipedia: wiki, Lang: prompts.English, FallbackLang: "de", Log: zap.NewNop()}

	linked := l.Link(context.Background(), []model.Candidate{
		{Name: "radium", WikipediaURL: "https://en.wikipedia.org/wiki/Radium"},
	})

	require.Len(t, linked, 1)
	require.NotNil(t, linked[0].Sources.Wikipedia)
	assert.Equal(t, "Radium is a chemical element.", linked[0].Sources.Wikipedia.Extract)
}

func TestLinkFallsBackToSearch(t *testing.T) {
	wiki := &fakeWikipedia{
		pages:    map[string]*model.WikipediaRecord{"en:Radium": radiumPage()},
		searches: map[string]string{"en:radium": "https://en.wikipedia.org/wiki/Radium"},
	}
	l := &Linker{Wikipedia: wiki, Lang: prompts.English, FallbackLang: "de", Log: zap.NewNop()}

	linked := l.Link(context.Background(), []model.Candidate{
		{Name: "radium", WikipediaURL: "not a url"},
	})

	require.NotNil(t, linked[0].Sources.Wikipedia)
	assert.Equal(t, "Radium", linked[0].Sources.Wikipedia.Label)
}

func TestLinkFollowsRedirect(t *testing.T) {
	wiki := &fakeWikipedia{
		pages:     map[string]*model.WikipediaRecord{"en:Radium": radiumPage()},
		redirects: map[string]string{"en:Ra": "Radium"},
	}
	l := &Linker{Wikipedia: wiki, Lang: prompts.English, Log: zap.NewNop()}

	linked := l.Link(context.Background(), []model.Candidate{
		{Name: "Ra", WikipediaURL: "https://en.wikipedia.org/wiki/Ra"},
	})

	require.NotNil(t, linked[0].Sources.Wikipedia)
	assert.Equal(t, "Radium", linked[0].Sources.Wikipedia.Label)
}

func TestLinkSynonymFallback(t *testing.T) {
	wiki := &fakeWikipedia{
		pages:    map[string]*model.WikipediaRecord{"en:Radium": radiumPage()},
		searches: map[string]string{"en:radium": "https://en.wikipedia.org/wiki/Radium"},
	}
	l := &Linker{
		Wikipedia: wiki,
		LLM:       &mockLLM{response: `["radium", "Ra"]`},
		Lang:      prompts.English,
		Log:       zap.NewNop(),
	}

	linked := l.Link(context.Background(), []model.Candidate{{Name: "element 88"}})
	require.NotNil(t, linked[0].Sources.Wikipedia)
	assert.Equal(t, "Radium", linked[0].Sources.Wikipedia.Label)
}

func TestLinkUnmatchedEntityKept(t *testing.T) {
	wiki := &fakeWikipedia{}
	l := &Linker{Wikipedia: wiki, Lang: prompts.English, Log: zap.NewNop()}

	linked := l.Link(context.Background(), []model.Candidate{{Name: "Unknownium"}})
	require.Len(t, linked, 1)
	assert.Nil(t, linked[0].Sources.Wikipedia)
	assert.Equal(t, "Unknownium", linked[0].Name)
}

func TestLinkLookupErrorDoesNotAbortBatch(t *testing.T) {
	wiki := &fakeWikipedia{pageErr: errors.New("upstream down")}
	l := &Linker{Wikipedia: wiki, Lang: prompts.English, Log: zap.NewNop()}

	linked := l.Link(context.Background(), []model.Candidate{
		{Name: "A", WikipediaURL: "https://en.wikipedia.org/wiki/A"},
		{Name: "B", WikipediaURL: "https://en.wikipedia.org/wiki/B"},
	})
	assert.Len(t, linked, 2)
}

func TestLinkWikidataReusesIncidentalID(t *testing.T) {
	wiki := &fakeWikipedia{pages: map[string]*model.WikipediaRecord{"en:Radium": radiumPage()}}
	wd := &fakeWikidata{entities: map[string]*model.WikidataRecord{
		"Q1128": {ID: "Q1128", Label: "radium"},
	}}
	l := &Linker{Wikipedia: wiki, Wikidata: wd, Lang: prompts.English, Log: zap.NewNop()}

	linked := l.Link(context.Background(), []model.Candidate{
		{Name: "radium", WikipediaURL: "https://en.wikipedia.org/wiki/Radium"},
	})

	require.NotNil(t, linked[0].Sources.Wikidata)
	assert.Equal(t, "Q1128", linked[0].Sources.Wikidata.ID)
}

func TestLinkDBpediaSynthesizedURIOnFailure(t *testing.T) {
	wiki := &fakeWikipedia{pages: map[string]*model.WikipediaRecord{"en:Radium": radiumPage()}}
	db := &fakeDBpedia{err: errors.New("endpoint down")}
	l := &Linker{Wikipedia: wiki, DBpedia: db, Lang: prompts.English, Log: zap.NewNop()}

	linked := l.Link(context.Background(), []model.Candidate{
		{Name: "radium", WikipediaURL: "https://en.wikipedia.org/wiki/Radium"},
	})

	require.NotNil(t, linked[0].Sources.DBpedia)
	assert.Equal(t, "http://dbpedia.org/resource/Radium", linked[0].Sources.DBpedia.ResourceURI)
}
