package core

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/kb"
)

// packageEntities converts linked entities into the output shape, locating
// citation spans in the source text and filling derivable gaps in the
// knowledge-base records.
func (p *Pipeline) packageEntities(input string, linked []model.LinkedEntity) []model.PackagedEntity {
	packaged := make([]model.PackagedEntity, 0, len(linked))
	for _, e := range linked {
		start, end := p.citationSpan(input, e.Name, e.Citation)
		sources := e.Sources
		if sources.Wikipedia != nil && sources.Wikipedia.Label == "" && sources.Wikipedia.URL != "" {
			sources.Wikipedia.Label = kb.TitleFromURL(sources.Wikipedia.URL)
		}
		packaged = append(packaged, model.PackagedEntity{
			Entity: e.Name,
			Details: model.EntityDetails{
				Typ:           e.Type,
				Inferred:      e.Inferred,
				Citation:      e.Citation,
				CitationStart: start,
				CitationEnd:   end,
			},
			Sources: sources,
		})
	}
	return packaged
}

// citationSpan locates the citation by plain substring search and reports
// the span in character offsets. A citation that does not occur verbatim
// falls back to the whole-text span, which over-approximates but never lies
// about containment.
func (p *Pipeline) citationSpan(input, entity, citation string) (int, int) {
	if citation != "" && citation != "generated" {
		if idx := strings.Index(input, citation); idx >= 0 {
			start := utf8.RuneCountInString(input[:idx])
			return start, start + utf8.RuneCountInString(citation)
		}
		p.Log.Debug("citation not found verbatim, using full span",
			zap.String("entity", entity))
	}
	return 0, utf8.RuneCountInString(input)
}
