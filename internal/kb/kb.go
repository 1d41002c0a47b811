// Package kb holds the knowledge-base lookup collaborators. Each client
// reads through the shared flat-file cache and routes network calls through
// the run-wide rate limiter.
package kb

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/entigraph/entigraph/internal/core/model"
)

// ValidWikipediaURL matches a syntactically plausible article URL on any
// language edition.
var ValidWikipediaURL = regexp.MustCompile(`^https?://[a-z]{2}\.wikipedia\.org/wiki/[\p{L}\p{N}_\-%]+`)

// Wikipedia resolves titles and URLs to article summaries.
type Wikipedia interface {
	// Page fetches the intro extract, categories, and incidental Wikidata ID
	// for an article title on the given language edition.
	Page(ctx context.Context, lang, title string) (*model.WikipediaRecord, error)
	// Search returns a best-guess article URL for a free-text query, or ""
	// when nothing matches.
	Search(ctx context.Context, lang, query string) (string, error)
	// Resolve follows redirects and normalization to the canonical title.
	Resolve(ctx context.Context, lang, title string) (string, error)
}

// Wikidata resolves IDs to structured records.
type Wikidata interface {
	Entity(ctx context.Context, id string) (*model.WikidataRecord, error)
	// SearchID finds an entity ID by label, or "" when nothing matches.
	SearchID(ctx context.Context, lang, name string) (string, error)
}

// DBpedia resolves a Wikipedia title to a DBpedia record.
type DBpedia interface {
	Lookup(ctx context.Context, title string) (*model.DBpediaRecord, error)
	// ResourceURI synthesizes the resource URI a title maps to, used as the
	// degrade value when lookups fail outright.
	ResourceURI(title string) string
}

// TitleFromURL extracts a human-readable article title from a Wikipedia URL:
// the path segment after /wiki/, percent-decoded, underscores as spaces.
func TitleFromURL(rawURL string) string {
	idx := strings.Index(rawURL, "/wiki/")
	if idx < 0 {
		return ""
	}
	title := rawURL[idx+len("/wiki/"):]
	if i := strings.IndexAny(title, "?#"); i >= 0 {
		title = title[:i]
	}
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	return strings.ReplaceAll(title, "_", " ")
}

// URLForTitle builds the canonical article URL for a title on a language
// edition.
func URLForTitle(lang, title string) string {
	return "https://" + lang + ".wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_")
}

// LangFromURL returns the language edition a Wikipedia URL belongs to, or ""
// when the URL is not a Wikipedia article.
func LangFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if !strings.HasSuffix(host, ".wikipedia.org") {
		return ""
	}
	return strings.TrimSuffix(host, ".wikipedia.org")
}
