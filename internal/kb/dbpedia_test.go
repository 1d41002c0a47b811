package kb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/cache"
)

func newDBpediaTestClient(t *testing.T, sparql, lookup http.Handler) *DBpediaClient {
	t.Helper()
	c := NewDBpediaClient(false, true, testLimiter(), cache.NewStore(t.TempDir(), true, zap.NewNop()), zap.NewNop())
	if sparql != nil {
		srv := httptest.NewServer(sparql)
		t.Cleanup(srv.Close)
		c.SPARQLEndpoint = srv.URL
	}
	if lookup != nil {
		srv := httptest.NewServer(lookup)
		t.Cleanup(srv.Close)
		c.LookupEndpoint = srv.URL
	}
	return c
}

func TestLookupViaSPARQL(t *testing.T) {
	sparql := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"bindings":[
			{"p":{"value":"http://dbpedia.org/ontology/abstract"},"o":{"value":"Radium is a chemical element."}},
			{"p":{"value":"http://www.w3.org/2000/01/rdf-schema#label"},"o":{"value":"Radium"}},
			{"p":{"value":"http://www.w3.org/1999/02/22-rdf-syntax-ns#type"},"o":{"value":"http://dbpedia.org/ontology/ChemicalElement"}},
			{"p":{"value":"http://purl.org/dc/terms/subject"},"o":{"value":"http://dbpedia.org/resource/Category:Chemical_elements"}}
		]}}`))
	})

	c := newDBpediaTestClient(t, sparql, nil)
	record, err := c.Lookup(context.Background(), "Radium")
	require.NoError(t, err)

	assert.Equal(t, "http://dbpedia.org/resource/Radium", record.ResourceURI)
	assert.Equal(t, "Radium", record.Label)
	assert.Equal(t, "Radium is a chemical element.", record.Abstract)
	assert.Equal(t, []string{"ChemicalElement"}, record.Types)
	assert.Equal(t, []string{"Chemical elements"}, record.Categories)
}

func TestLookupFallsBackToKeywordSearch(t *testing.T) {
	sparql := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"bindings":[]}}`))
	})
	lookup := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"docs":[{
			"resource":["http://dbpedia.org/resource/Radium"],
			"label":["<B>Radium</B>"],
			"comment":["Radium is a chemical element."],
			"category":["http://dbpedia.org/resource/Category:Chemical_elements"]
		}]}`))
	})

	c := newDBpediaTestClient(t, sparql, lookup)
	record, err := c.Lookup(context.Background(), "Radium")
	require.NoError(t, err)

	assert.Equal(t, "http://dbpedia.org/resource/Radium", record.ResourceURI)
	assert.Equal(t, "Radium", record.Label, "highlight markup stripped")
	assert.Equal(t, "Radium is a chemical element.", record.Abstract)
	assert.Equal(t, []string{"Chemical elements"}, record.Categories)
}

func TestResourceURIGermanEndpoint(t *testing.T) {
	c := NewDBpediaClient(true, false, testLimiter(), cache.NewStore(t.TempDir(), false, zap.NewNop()), zap.NewNop())
	assert.Equal(t, "http://de.dbpedia.org/resource/Marie_Curie", c.ResourceURI("Marie Curie"))
}
