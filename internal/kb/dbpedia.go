package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/cache"
	"github.com/entigraph/entigraph/internal/core/model"
	"github.com/entigraph/entigraph/internal/ratelimit"
)

// DBpediaClient resolves Wikipedia titles to DBpedia records via SPARQL,
// with the Lookup keyword API as a fallback when the direct resource query
// comes back empty.
type DBpediaClient struct {
	SPARQLEndpoint string
	LookupEndpoint string
	ResourcePrefix string

	lang      string
	useLookup bool

	limiter *ratelimit.Limiter
	cache   *cache.Store
	log     *zap.Logger
}

// NewDBpediaClient builds a client against the English endpoints, or the
// German ones when useDE is set.
func NewDBpediaClient(useDE, useLookup bool, limiter *ratelimit.Limiter, store *cache.Store, log *zap.Logger) *DBpediaClient {
	c := &DBpediaClient{
		SPARQLEndpoint: "https://dbpedia.org/sparql",
		LookupEndpoint: "https://lookup.dbpedia.org/api/search",
		ResourcePrefix: "http://dbpedia.org/resource/",
		lang:           "en",
		useLookup:      useLookup,
		limiter:        limiter,
		cache:          store,
		log:            log,
	}
	if useDE {
		c.SPARQLEndpoint = "https://de.dbpedia.org/sparql"
		c.ResourcePrefix = "http://de.dbpedia.org/resource/"
		c.lang = "de"
	}
	return c
}

// ResourceURI synthesizes the resource URI a title maps to, used both for
// queries and as the degrade value when every lookup fails.
func (c *DBpediaClient) ResourceURI(title string) string {
	return c.ResourcePrefix + strings.ReplaceAll(title, " ", "_")
}

type sparqlResponse struct {
	Results struct {
		Bindings []struct {
			P struct {
				Value string `json:"value"`
			} `json:"p"`
			O struct {
				Value string `json:"value"`
			} `json:"o"`
		} `json:"bindings"`
	} `json:"results"`
}

// Lookup fetches abstract, types, and relations for a title. An entity with
// no DBpedia presence returns an empty record and no error.
func (c *DBpediaClient) Lookup(ctx context.Context, title string) (*model.DBpediaRecord, error) {
	resource := c.ResourceURI(title)
	var cached model.DBpediaRecord
	if c.cache.Load("dbpedia", resource, &cached) {
		return &cached, nil
	}

	record, err := c.sparql(ctx, resource)
	if err != nil {
		return nil, err
	}
	if record.Abstract == "" && c.useLookup {
		if fallback := c.lookupAPI(ctx, title); fallback != nil {
			record = fallback
		}
	}

	if record.Abstract != "" || record.Label != "" {
		c.cache.Save("dbpedia", resource, record)
	}
	return record, nil
}

func (c *DBpediaClient) sparql(ctx context.Context, resource string) (*model.DBpediaRecord, error) {
	query := fmt.Sprintf(`SELECT ?p ?o WHERE {
  <%s> ?p ?o .
  FILTER(?p IN (
    <http://dbpedia.org/ontology/abstract>,
    <http://www.w3.org/1999/02/22-rdf-syntax-ns#type>,
    <http://purl.org/dc/terms/subject>,
    <http://www.w3.org/2000/01/rdf-schema#label>,
    <http://dbpedia.org/ontology/isPartOf>,
    <http://dbpedia.org/ontology/part>,
    <http://dbpedia.org/property/memberOf>
  ))
  FILTER(!isLiteral(?o) || lang(?o) = "" || lang(?o) = "%s")
}`, resource, c.lang)

	params := url.Values{
		"query":  {query},
		"format": {"application/sparql-results+json"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SPARQLEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.limiter.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sparql query failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sparql endpoint returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed sparqlResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode sparql response: %w", err)
	}

	record := &model.DBpediaRecord{ResourceURI: resource}
	for _, b := range parsed.Results.Bindings {
		switch {
		case strings.HasSuffix(b.P.Value, "/ontology/abstract"):
			record.Abstract = b.O.Value
		case strings.HasSuffix(b.P.Value, "rdf-schema#label"):
			record.Label = b.O.Value
		case strings.HasSuffix(b.P.Value, "rdf-syntax-ns#type"):
			record.Types = append(record.Types, lastURISegment(b.O.Value))
		case strings.HasSuffix(b.P.Value, "dc/terms/subject"):
			record.Categories = append(record.Categories, categoryName(b.O.Value))
		case strings.HasSuffix(b.P.Value, "/ontology/isPartOf"):
			record.PartOf = append(record.PartOf, lastURISegment(b.O.Value))
		case strings.HasSuffix(b.P.Value, "/ontology/part"):
			record.HasParts = append(record.HasParts, lastURISegment(b.O.Value))
		case strings.HasSuffix(b.P.Value, "/property/memberOf"):
			record.MemberOf = append(record.MemberOf, lastURISegment(b.O.Value))
		}
	}
	return record, nil
}

type lookupResponse struct {
	Docs []struct {
		Resource []string `json:"resource"`
		Label    []string `json:"label"`
		Comment  []string `json:"comment"`
		Category []string `json:"category"`
		Type     []string `json:"type"`
	} `json:"docs"`
}

// lookupAPI is the keyword-search fallback. It returns nil on any failure;
// the caller keeps whatever the primary query produced.
func (c *DBpediaClient) lookupAPI(ctx context.Context, title string) *model.DBpediaRecord {
	params := url.Values{
		"query":      {title},
		"format":     {"json"},
		"maxResults": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LookupEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.limiter.Do(req)
	if err != nil {
		c.log.Debug("dbpedia lookup api failed", zap.String("title", title), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Docs) == 0 {
		return nil
	}
	doc := parsed.Docs[0]
	record := &model.DBpediaRecord{}
	if len(doc.Resource) > 0 {
		record.ResourceURI = doc.Resource[0]
	}
	if len(doc.Label) > 0 {
		record.Label = stripMarkup(doc.Label[0])
	}
	if len(doc.Comment) > 0 {
		record.Abstract = stripMarkup(doc.Comment[0])
	}
	for _, cat := range doc.Category {
		record.Categories = append(record.Categories, categoryName(stripMarkup(cat)))
	}
	for _, typ := range doc.Type {
		record.Types = append(record.Types, lastURISegment(typ))
	}
	return record
}

func lastURISegment(uri string) string {
	if i := strings.LastIndexAny(uri, "/#"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func categoryName(uri string) string {
	name := lastURISegment(uri)
	name = strings.TrimPrefix(name, "Category:")
	name = strings.TrimPrefix(name, "Kategorie:")
	return strings.ReplaceAll(name, "_", " ")
}

// stripMarkup removes the <B> highlighting the Lookup API embeds in labels.
func stripMarkup(s string) string {
	s = strings.ReplaceAll(s, "<B>", "")
	s = strings.ReplaceAll(s, "</B>", "")
	return s
}
