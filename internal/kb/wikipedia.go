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

// WikipediaClient talks to the MediaWiki action API.
type WikipediaClient struct {
	// APIBase contains a {lang} placeholder for the language edition. Tests
	// point it at a fixed host.
	APIBase string

	limiter *ratelimit.Limiter
	cache   *cache.Store
	log     *zap.Logger
}

func NewWikipediaClient(limiter *ratelimit.Limiter, store *cache.Store, log *zap.Logger) *WikipediaClient {
	return &WikipediaClient{
		APIBase: "https://{lang}.wikipedia.org/w/api.php",
		limiter: limiter,
		cache:   store,
		log:     log,
	}
}

func (c *WikipediaClient) apiURL(lang string) string {
	return strings.ReplaceAll(c.APIBase, "{lang}", lang)
}

func (c *WikipediaClient) get(ctx context.Context, lang string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(lang)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.limiter.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia api returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type pageResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Missing *any   `json:"missing,omitempty"`
			Extract string `json:"extract"`
			Categories []struct {
				Title string `json:"title"`
			} `json:"categories"`
			PageProps struct {
				WikibaseItem string `json:"wikibase_item"`
			} `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

// Page fetches the intro extract, categories, and Wikidata item for a title.
// A missing article returns an empty record with no error; the linker decides
// what to try next.
func (c *WikipediaClient) Page(ctx context.Context, lang, title string) (*model.WikipediaRecord, error) {
	key := URLForTitle(lang, title)
	var cached model.WikipediaRecord
	if c.cache.Load("wikipedia", key, &cached) {
		return &cached, nil
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts|categories|pageprops"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"cllimit":     {"20"},
		"ppprop":      {"wikibase_item"},
		"titles":      {title},
	}
	body, err := c.get(ctx, lang, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %q: %w", title, err)
	}

	var parsed pageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode page response: %w", err)
	}

	record := &model.WikipediaRecord{}
	for _, page := range parsed.Query.Pages {
		if page.Missing != nil {
			continue
		}
		record.Label = page.Title
		record.URL = URLForTitle(lang, page.Title)
		record.Extract = trimEllipsis(page.Extract)
		record.WikidataID = page.PageProps.WikibaseItem
		for _, cat := range page.Categories {
			record.Categories = append(record.Categories, stripCategoryPrefix(cat.Title))
		}
		break
	}

	if record.Extract != "" || record.Label != "" {
		c.cache.Save("wikipedia", key, record)
	}
	return record, nil
}

// Search runs an opensearch query and returns the top hit's URL, or "" when
// nothing matches.
func (c *WikipediaClient) Search(ctx context.Context, lang, query string) (string, error) {
	key := lang + ":" + query
	var cached string
	if c.cache.Load("wikipedia_search", key, &cached) {
		return cached, nil
	}

	params := url.Values{
		"action": {"opensearch"},
		"format": {"json"},
		"limit":  {"1"},
		"search": {query},
	}
	body, err := c.get(ctx, lang, params)
	if err != nil {
		return "", fmt.Errorf("search failed for %q: %w", query, err)
	}

	// Opensearch answers a positional array: [query, titles, descriptions, urls].
	var parsed []json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed) < 4 {
		return "", fmt.Errorf("unexpected opensearch response for %q", query)
	}
	var urls []string
	if err := json.Unmarshal(parsed[3], &urls); err != nil {
		return "", fmt.Errorf("unexpected opensearch url list for %q", query)
	}
	result := ""
	if len(urls) > 0 {
		result = urls[0]
	}

	c.cache.Save("wikipedia_search", key, result)
	return result, nil
}

type redirectResponse struct {
	Query struct {
		Normalized []struct {
			To string `json:"to"`
		} `json:"normalized"`
		Redirects []struct {
			To string `json:"to"`
		} `json:"redirects"`
		Pages map[string]struct {
			Title string `json:"title"`
		} `json:"pages"`
	} `json:"query"`
}

// Resolve follows normalization and redirects to the canonical article
// title.
func (c *WikipediaClient) Resolve(ctx context.Context, lang, title string) (string, error) {
	key := lang + ":" + title
	var cached string
	if c.cache.Load("wikipedia_redirect", key, &cached) {
		return cached, nil
	}

	params := url.Values{
		"action":    {"query"},
		"format":    {"json"},
		"redirects": {"1"},
		"titles":    {title},
	}
	body, err := c.get(ctx, lang, params)
	if err != nil {
		return "", fmt.Errorf("redirect resolution failed for %q: %w", title, err)
	}

	var parsed redirectResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode redirect response: %w", err)
	}

	resolved := title
	if n := len(parsed.Query.Redirects); n > 0 {
		resolved = parsed.Query.Redirects[n-1].To
	} else if n := len(parsed.Query.Normalized); n > 0 {
		resolved = parsed.Query.Normalized[n-1].To
	} else {
		for _, page := range parsed.Query.Pages {
			if page.Title != "" {
				resolved = page.Title
			}
		}
	}

	c.cache.Save("wikipedia_redirect", key, resolved)
	return resolved, nil
}

// trimEllipsis drops a trailing ellipsis some intro extracts carry.
func trimEllipsis(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "…")
	s = strings.TrimSuffix(s, "...")
	return strings.TrimSpace(s)
}

func stripCategoryPrefix(title string) string {
	if i := strings.Index(title, ":"); i >= 0 {
		return title[i+1:]
	}
	return title
}
