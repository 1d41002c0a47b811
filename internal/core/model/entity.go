package model

// Inferred marks whether a record was stated in the source text or produced
// beyond it.
type Inferred string

const (
	Explicit Inferred = "explicit"
	Implicit Inferred = "implicit"
)

// Candidate is an entity as the language model proposed it, before any
// knowledge-base linking. Candidates are never renamed downstream, only
// enriched.
type Candidate struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	WikipediaURL string   `json:"wikipedia_url,omitempty"`
	Citation     string   `json:"citation,omitempty"`
	Inferred     Inferred `json:"inferred"`
}

// WikipediaRecord holds the fields retrieved from the Wikipedia API for one
// entity.
type WikipediaRecord struct {
	Label      string   `json:"label,omitempty"`
	URL        string   `json:"url,omitempty"`
	Extract    string   `json:"extract,omitempty"`
	Categories []string `json:"categories,omitempty"`
	WikidataID string   `json:"wikidata_id,omitempty"`
}

type WikidataRecord struct {
	ID          string   `json:"id,omitempty"`
	URL         string   `json:"url,omitempty"`
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
	Types       []string `json:"types,omitempty"`
	InstanceOf  []string `json:"instance_of,omitempty"`
	SubclassOf  []string `json:"subclass_of,omitempty"`
	PartOf      []string `json:"part_of,omitempty"`
	HasParts    []string `json:"has_parts,omitempty"`
	MemberOf    []string `json:"member_of,omitempty"`
}

type DBpediaRecord struct {
	ResourceURI string   `json:"resource_uri,omitempty"`
	Label       string   `json:"label,omitempty"`
	Abstract    string   `json:"abstract,omitempty"`
	Types       []string `json:"types,omitempty"`
	PartOf      []string `json:"part_of,omitempty"`
	HasParts    []string `json:"has_parts,omitempty"`
	MemberOf    []string `json:"member_of,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// Sources groups the knowledge-base records attached to one entity. A nil
// pointer means that source produced nothing for the entity.
type Sources struct {
	Wikipedia *WikipediaRecord `json:"wikipedia,omitempty"`
	Wikidata  *WikidataRecord  `json:"wikidata,omitempty"`
	DBpedia   *DBpediaRecord   `json:"dbpedia,omitempty"`
}

// LinkedEntity is a candidate plus whatever the knowledge bases returned for
// it. Entities with no match anywhere still carry empty Sources rather than
// being dropped.
type LinkedEntity struct {
	Candidate
	Sources Sources `json:"sources"`
}

// Key is the identity used when merging entities across chunks: the
// Wikipedia URL when one exists, otherwise the name. First seen wins.
func (e LinkedEntity) Key() string {
	if e.Sources.Wikipedia != nil && e.Sources.Wikipedia.URL != "" {
		return e.Sources.Wikipedia.URL
	}
	if e.WikipediaURL != "" {
		return e.WikipediaURL
	}
	return e.Name
}
