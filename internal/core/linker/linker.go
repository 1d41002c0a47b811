// Package linker enriches entity candidates with knowledge-base records. The
// Wikipedia resolution runs as an ordered list of strategies tried until one
// yields an extract; every lookup failure degrades the single entity and
// never aborts the batch.
package linker

import (
	"context"

	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/kb"
	"github.com/entigraph/entigraph/internal/llm"
	"github.com/entigraph/entigraph/internal/prompts"
)

type Linker struct {
	Wikipedia kb.Wikipedia
	// Wikidata and DBpedia are optional; nil disables that source.
	Wikidata kb.Wikidata
	DBpedia  kb.DBpedia
	// LLM powers the synonym fallback; nil disables it.
	LLM llm.Client

	Lang         prompts.Language
	FallbackLang string
	Log          *zap.Logger
}

// resolveStep is one named strategy in the Wikipedia resolution cascade. It
// returns nil when the strategy found nothing; errors are logged by the
// caller and treated the same way.
type resolveStep struct {
	name string
	run  func(ctx context.Context, c model.Candidate) (*model.WikipediaRecord, error)
}

func (l *Linker) cascade() []resolveStep {
	return []resolveStep{
		{"candidate-url", l.fromCandidateURL},
		{"search", l.fromSearch},
		{"synonyms", l.fromSynonyms},
	}
}

// Link resolves each candidate through the cascade and attaches Wikidata and
// DBpedia records where enabled. Candidates with no match anywhere are still
// returned, with empty sources.
func (l *Linker) Link(ctx context.Context, candidates []model.Candidate) []model.LinkedEntity {
	linked := make([]model.LinkedEntity, 0, len(candidates))
	for _, c := range candidates {
		entity := model.LinkedEntity{Candidate: c}

		var page *model.WikipediaRecord
		for _, step := range l.cascade() {
			record, err := step.run(ctx, c)
			if err != nil {
				l.Log.Debug("resolution step failed",
					zap.String("entity", c.Name),
					zap.String("step", step.name),
					zap.Error(err))
				continue
			}
			if record != nil {
				l.Log.Debug("entity resolved",
					zap.String("entity", c.Name),
					zap.String("step", step.name))
				page = record
				break
			}
		}

		if page != nil {
			entity.Sources.Wikipedia = page
			if l.Wikidata != nil {
				entity.Sources.Wikidata = l.linkWikidata(ctx, c.Name, page.WikidataID)
			}
		} else {
			l.Log.Warn("no wikipedia match found", zap.String("entity", c.Name))
		}

		if l.DBpedia != nil {
			entity.Sources.DBpedia = l.linkDBpedia(ctx, c, page)
		}

		linked = append(linked, entity)
	}
	return linked
}

// fromCandidateURL uses the URL the model supplied, when it is syntactically
// valid.
func (l *Linker) fromCandidateURL(ctx context.Context, c model.Candidate) (*model.WikipediaRecord, error) {
	if !kb.ValidWikipediaURL.MatchString(c.WikipediaURL) {
		return nil, nil
	}
	lang := kb.LangFromURL(c.WikipediaURL)
	if lang == "" {
		lang = string(l.Lang)
	}
	return l.fetchWithRetry(ctx, lang, kb.TitleFromURL(c.WikipediaURL))
}

// fromSearch queries the source language's Wikipedia, then the fallback
// language.
func (l *Linker) fromSearch(ctx context.Context, c model.Candidate) (*model.WikipediaRecord, error) {
	for _, lang := range []string{string(l.Lang), l.FallbackLang} {
		if lang == "" {
			continue
		}
		url, err := l.Wikipedia.Search(ctx, lang, c.Name)
		if err != nil {
			l.Log.Debug("search failed", zap.String("entity", c.Name), zap.String("lang", lang), zap.Error(err))
			continue
		}
		if url == "" {
			continue
		}
		record, err := l.fetchWithRetry(ctx, lang, kb.TitleFromURL(url))
		if err != nil || record == nil {
			continue
		}
		return record, nil
	}
	return nil, nil
}

// fromSynonyms asks the model for alternative names and retries the search
// with each. Last resort before giving up on Wikipedia.
func (l *Linker) fromSynonyms(ctx context.Context, c model.Candidate) (*model.WikipediaRecord, error) {
	if l.LLM == nil {
		return nil, nil
	}
	response, err := l.LLM.Complete(ctx, llm.CompletionRequest{
		System: prompts.SynonymSystem(l.Lang),
		User:   prompts.SynonymUser(l.Lang, c.Name),
	})
	if err != nil {
		return nil, err
	}
	synonyms, err := llm.DecodeList[string](response)
	if err != nil {
		return nil, err
	}
	for _, syn := range synonyms {
		if syn == "" || syn == c.Name {
			continue
		}
		record, err := l.fromSearch(ctx, model.Candidate{Name: syn})
		if err != nil || record == nil {
			continue
		}
		return record, nil
	}
	return nil, nil
}

// fetchWithRetry fetches an extract, following redirects to the canonical
// title once when the first fetch comes back empty.
func (l *Linker) fetchWithRetry(ctx context.Context, lang, title string) (*model.WikipediaRecord, error) {
	if title == "" {
		return nil, nil
	}
	record, err := l.Wikipedia.Page(ctx, lang, title)
	if err != nil {
		return nil, err
	}
	if record.Extract != "" {
		return record, nil
	}

	resolved, err := l.Wikipedia.Resolve(ctx, lang, title)
	if err != nil || resolved == "" || resolved == title {
		return nil, err
	}
	record, err = l.Wikipedia.Page(ctx, lang, resolved)
	if err != nil {
		return nil, err
	}
	if record.Extract != "" {
		return record, nil
	}
	return nil, nil
}

// linkWikidata resolves an ID (preferring one surfaced during the extract
// fetch) and loads the entity record.
func (l *Linker) linkWikidata(ctx context.Context, name, knownID string) *model.WikidataRecord {
	id := knownID
	if id == "" {
		found, err := l.Wikidata.SearchID(ctx, string(l.Lang), name)
		if err != nil {
			l.Log.Debug("wikidata search failed", zap.String("entity", name), zap.Error(err))
			return nil
		}
		id = found
	}
	if id == "" {
		return nil
	}
	record, err := l.Wikidata.Entity(ctx, id)
	if err != nil {
		l.Log.Debug("wikidata fetch failed", zap.String("entity", name), zap.String("id", id), zap.Error(err))
		return nil
	}
	return record
}

// linkDBpedia looks the entity up by its Wikipedia title, degrading to a
// synthesized resource URI when everything fails.
func (l *Linker) linkDBpedia(ctx context.Context, c model.Candidate, page *model.WikipediaRecord) *model.DBpediaRecord {
	title := c.Name
	if page != nil && page.Label != "" {
		title = page.Label
	}
	record, err := l.DBpedia.Lookup(ctx, title)
	if err != nil {
		l.Log.Debug("dbpedia lookup failed", zap.String("entity", c.Name), zap.Error(err))
		return &model.DBpediaRecord{ResourceURI: l.DBpedia.ResourceURI(title)}
	}
	if record == nil {
		return &model.DBpediaRecord{ResourceURI: l.DBpedia.ResourceURI(title)}
	}
	if record.ResourceURI == "" {
		record.ResourceURI = l.DBpedia.ResourceURI(title)
	}
	return record
}
