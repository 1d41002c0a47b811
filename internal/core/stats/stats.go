// Package stats derives summary figures for a finished run: type and
// knowledge-base coverage distributions, frequency rankings over the linked
// records, connection degrees, and a community count over the relationship
// graph.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/entigraph/entigraph/internal/core/model"
)

// TopN is the ranking depth for the frequency lists.
const TopN = 10

// Compute builds the statistics block for a packaged result.
func Compute(entities []model.LinkedEntity, relationships []model.Relationship) model.Statistics {
	s := model.Statistics{
		TotalEntities:      len(entities),
		TotalRelationships: len(relationships),
		TypeDistribution:   make(map[string]int),
		LinkedCoverage:     make(map[string]model.SourceCoverage),
		EntityConnections:  connectionDegrees(relationships),
		Communities:        countCommunities(relationships),
	}

	var categories, wdTypes, wdPartOf, wdHasParts, dbSubjects, dbPartOf counter
	linked := map[string]int{"wikipedia": 0, "wikidata": 0, "dbpedia": 0}

	for _, e := range entities {
		if e.Type != "" {
			s.TypeDistribution[e.Type]++
		}
		if e.Sources.Wikipedia != nil {
			linked["wikipedia"]++
			categories.addAll(e.Sources.Wikipedia.Categories)
		}
		if e.Sources.Wikidata != nil {
			linked["wikidata"]++
			wdTypes.addAll(e.Sources.Wikidata.Types)
			wdPartOf.addAll(e.Sources.Wikidata.PartOf)
			wdHasParts.addAll(e.Sources.Wikidata.HasParts)
		}
		if e.Sources.DBpedia != nil {
			linked["dbpedia"]++
			dbSubjects.addAll(e.Sources.DBpedia.Categories)
			dbPartOf.addAll(e.Sources.DBpedia.PartOf)
		}
	}

	for source, count := range linked {
		s.LinkedCoverage[source] = model.SourceCoverage{
			Count:   count,
			Percent: percent(count, len(entities)),
		}
	}

	s.TopCategories = categories.top(TopN)
	s.TopWikidataTypes = wdTypes.top(TopN)
	s.TopWikidataPartOf = wdPartOf.top(TopN)
	s.TopWikidataHasPart = wdHasParts.top(TopN)
	s.TopDBpediaSubjects = dbSubjects.top(TopN)
	s.TopDBpediaPartOf = dbPartOf.top(TopN)
	return s
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

type counter struct {
	counts map[string]int
}

func (c *counter) addAll(values []string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		c.counts[v]++
	}
}

// top returns the n most frequent values, count descending with name as the
// tie break so the ranking is stable.
func (c *counter) top(n int) []model.CountedItem {
	if len(c.counts) == 0 {
		return nil
	}
	items := make([]model.CountedItem, 0, len(c.counts))
	for name, count := range c.counts {
		items = append(items, model.CountedItem{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// connectionDegrees counts the undirected degree of every entity that
// appears in a relationship.
func connectionDegrees(relationships []model.Relationship) map[string]int {
	degrees := make(map[string]int)
	for _, r := range relationships {
		degrees[r.Subject]++
		degrees[r.Object]++
	}
	return degrees
}

const lpaMaxIterations = 20

// countCommunities runs label propagation over the undirected relationship
// graph and counts the resulting clusters of two or more entities. Ties are
// broken lexicographically so repeated runs agree.
func countCommunities(relationships []model.Relationship) int {
	adj := make(map[string]map[string]int)
	touch := func(name string) {
		if adj[name] == nil {
			adj[name] = make(map[string]int)
		}
	}
	for _, r := range relationships {
		a := strings.ToLower(r.Subject)
		b := strings.ToLower(r.Object)
		if a == b {
			continue
		}
		touch(a)
		touch(b)
		adj[a][b]++
		adj[b][a]++
	}
	if len(adj) == 0 {
		return 0
	}

	names := make([]string, 0, len(adj))
	labels := make(map[string]string, len(adj))
	for name := range adj {
		names = append(names, name)
		labels[name] = name
	}
	sort.Strings(names)

	for iter := 0; iter < lpaMaxIterations; iter++ {
		changed := 0
		for _, u := range names {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}
			weights := make(map[string]int)
			maxWeight := 0
			for v, w := range neighbors {
				weights[labels[v]] += w
				if weights[labels[v]] > maxWeight {
					maxWeight = weights[labels[v]]
				}
			}
			var candidates []string
			for label, w := range weights {
				if w == maxWeight {
					candidates = append(candidates, label)
				}
			}
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]
			if labels[u] != best {
				labels[u] = best
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	sizes := make(map[string]int)
	for _, label := range labels {
		sizes[label]++
	}
	communities := 0
	for _, size := range sizes {
		if size >= 2 {
			communities++
		}
	}
	return communities
}
