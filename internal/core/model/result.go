package model

// PackagedEntity is the output shape for one entity: the name, its details,
// and the nested knowledge-base records.
type PackagedEntity struct {
	Entity  string        `json:"entity"`
	Details EntityDetails `json:"details"`
	Sources Sources       `json:"sources"`
}

type EntityDetails struct {
	Typ           string   `json:"typ"`
	Inferred      Inferred `json:"inferred"`
	Citation      string   `json:"citation,omitempty"`
	CitationStart int      `json:"citation_start"`
	CitationEnd   int      `json:"citation_end"`
}

// CountedItem is one row of a frequency ranking.
type CountedItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SourceCoverage reports how many entities a knowledge base linked and the
// share of the total that represents.
type SourceCoverage struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Statistics struct {
	TotalEntities      int                       `json:"total_entities"`
	TotalRelationships int                       `json:"total_relationships"`
	TypeDistribution   map[string]int            `json:"entity_types"`
	LinkedCoverage     map[string]SourceCoverage `json:"linked"`
	TopCategories      []CountedItem             `json:"top_wikipedia_categories,omitempty"`
	TopWikidataTypes   []CountedItem             `json:"top_wikidata_types,omitempty"`
	TopWikidataPartOf  []CountedItem             `json:"top_wikidata_part_of,omitempty"`
	TopWikidataHasPart []CountedItem             `json:"top_wikidata_has_parts,omitempty"`
	TopDBpediaSubjects []CountedItem             `json:"top_dbpedia_subjects,omitempty"`
	TopDBpediaPartOf   []CountedItem             `json:"top_dbpedia_part_of,omitempty"`
	EntityConnections  map[string]int            `json:"entity_connections"`
	Communities        int                       `json:"communities"`
}

// Result is the packaged output of one pipeline run.
type Result struct {
	RunID         string           `json:"run_id"`
	Mode          string           `json:"mode"`
	Entities      []PackagedEntity `json:"entities"`
	Relationships []Relationship   `json:"relationships"`
	Statistics    Statistics       `json:"statistics"`
	Compendium    string           `json:"compendium,omitempty"`
	References    []string         `json:"references,omitempty"`
}
