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

// Properties read off a Wikidata item.
const (
	propInstanceOf = "P31"
	propSubclassOf = "P279"
	propPartOf     = "P361"
	propHasParts   = "P527"
	propMemberOf   = "P463"
)

// WikidataClient talks to the wbgetentities / wbsearchentities API.
type WikidataClient struct {
	APIBase string

	lang    string
	details bool

	limiter *ratelimit.Limiter
	cache   *cache.Store
	log     *zap.Logger
}

// NewWikidataClient builds a client answering labels in lang. details adds
// the part-of / has-parts / member-of / subclass-of relations to each record.
func NewWikidataClient(lang string, details bool, limiter *ratelimit.Limiter, store *cache.Store, log *zap.Logger) *WikidataClient {
	return &WikidataClient{
		APIBase: "https://www.wikidata.org/w/api.php",
		lang:    lang,
		details: details,
		limiter: limiter,
		cache:   store,
		log:     log,
	}
}

func (c *WikidataClient) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.limiter.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikidata api returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type claimSnak struct {
	MainSnak struct {
		DataValue struct {
			Value struct {
				ID string `json:"id"`
			} `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type entitiesResponse struct {
	Entities map[string]struct {
		Labels map[string]struct {
			Value string `json:"value"`
		} `json:"labels"`
		Descriptions map[string]struct {
			Value string `json:"value"`
		} `json:"descriptions"`
		Claims map[string][]claimSnak `json:"claims"`
	} `json:"entities"`
}

// Entity fetches the label, description, and typed relations of one item.
// Related item IDs are resolved to labels in a single follow-up call.
func (c *WikidataClient) Entity(ctx context.Context, id string) (*model.WikidataRecord, error) {
	key := id + ":" + c.lang
	var cached model.WikidataRecord
	if c.cache.Load("wikidata", key, &cached) {
		return &cached, nil
	}

	params := url.Values{
		"action":    {"wbgetentities"},
		"format":    {"json"},
		"ids":       {id},
		"props":     {"labels|descriptions|claims"},
		"languages": {c.lang + "|en"},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entity %s: %w", id, err)
	}

	var parsed entitiesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode entity response: %w", err)
	}
	entity, ok := parsed.Entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %s not found", id)
	}

	record := &model.WikidataRecord{
		ID:  id,
		URL: "https://www.wikidata.org/wiki/" + id,
	}
	record.Label = c.pickLabel(entity.Labels)
	record.Description = c.pickLabel(entity.Descriptions)

	wanted := map[string]*[]string{
		propInstanceOf: &record.InstanceOf,
	}
	if c.details {
		wanted[propSubclassOf] = &record.SubclassOf
		wanted[propPartOf] = &record.PartOf
		wanted[propHasParts] = &record.HasParts
		wanted[propMemberOf] = &record.MemberOf
	}

	var related []string
	targets := map[string][]string{}
	for prop := range wanted {
		for _, claim := range entity.Claims[prop] {
			if qid := claim.MainSnak.DataValue.Value.ID; qid != "" {
				targets[prop] = append(targets[prop], qid)
				related = append(related, qid)
			}
		}
	}

	labels, err := c.labels(ctx, related)
	if err != nil {
		// Degrade to raw IDs rather than dropping the relations.
		c.log.Debug("failed to resolve related labels", zap.String("id", id), zap.Error(err))
		labels = map[string]string{}
	}
	for prop, dest := range wanted {
		for _, qid := range targets[prop] {
			name := labels[qid]
			if name == "" {
				name = qid
			}
			*dest = append(*dest, name)
		}
	}
	record.Types = append(record.Types, record.InstanceOf...)

	c.cache.Save("wikidata", key, record)
	return record, nil
}

// labels resolves a batch of item IDs to display labels.
func (c *WikidataClient) labels(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	params := url.Values{
		"action":    {"wbgetentities"},
		"format":    {"json"},
		"ids":       {strings.Join(ids, "|")},
		"props":     {"labels"},
		"languages": {c.lang + "|en"},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	var parsed entitiesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(parsed.Entities))
	for qid, entity := range parsed.Entities {
		out[qid] = c.pickLabel(entity.Labels)
	}
	return out, nil
}

func (c *WikidataClient) pickLabel(labels map[string]struct {
	Value string `json:"value"`
}) string {
	if l, ok := labels[c.lang]; ok && l.Value != "" {
		return l.Value
	}
	if l, ok := labels["en"]; ok {
		return l.Value
	}
	return ""
}

type searchEntitiesResponse struct {
	Search []struct {
		ID string `json:"id"`
	} `json:"search"`
}

// SearchID finds an item ID by label, or "" when nothing matches.
func (c *WikidataClient) SearchID(ctx context.Context, lang, name string) (string, error) {
	key := lang + ":" + name
	var cached string
	if c.cache.Load("wikidata_search", key, &cached) {
		return cached, nil
	}

	params := url.Values{
		"action":   {"wbsearchentities"},
		"format":   {"json"},
		"language": {lang},
		"limit":    {"1"},
		"search":   {name},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return "", fmt.Errorf("wikidata search failed for %q: %w", name, err)
	}

	var parsed searchEntitiesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode wikidata search response: %w", err)
	}
	result := ""
	if len(parsed.Search) > 0 {
		result = parsed.Search[0].ID
	}

	c.cache.Save("wikidata_search", key, result)
	return result, nil
}
