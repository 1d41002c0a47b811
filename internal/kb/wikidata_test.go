package kb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entigraph/entigraph/internal/cache"
)

func TestEntity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := r.URL.Query().Get("ids")
		if strings.Contains(ids, "|") || ids == "Q11344" {
			// Label batch for related items.
			w.Write([]byte(`{"entities":{
				"Q11344":{"labels":{"en":{"value":"chemical element"}}}
			}}`))
			return
		}
		w.Write([]byte(`{"entities":{"Q1128":{
			"labels":{"en":{"value":"radium"}},
			"descriptions":{"en":{"value":"chemical element with symbol Ra"}},
			"claims":{"P31":[{"mainsnak":{"datavalue":{"value":{"id":"Q11344"}}}}]}
		}}}`))
	}))
	defer srv.Close()

	c := NewWikidataClient("en", false, testLimiter(), cache.NewStore(t.TempDir(), true, zap.NewNop()), zap.NewNop())
	c.APIBase = srv.URL

	record, err := c.Entity(context.Background(), "Q1128")
	require.NoError(t, err)

	assert.Equal(t, "Q1128", record.ID)
	assert.Equal(t, "https://www.wikidata.org/wiki/Q1128", record.URL)
	assert.Equal(t, "radium", record.Label)
	assert.Equal(t, "chemical element with symbol Ra", record.Description)
	assert.Equal(t, []string{"chemical element"}, record.InstanceOf)
	assert.Equal(t, []string{"chemical element"}, record.Types)
	assert.Empty(t, record.PartOf, "detail relations off by default")
}

func TestEntityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"entities":{}}`))
	}))
	defer srv.Close()

	c := NewWikidataClient("en", false, testLimiter(), cache.NewStore(t.TempDir(), true, zap.NewNop()), zap.NewNop())
	c.APIBase = srv.URL

	_, err := c.Entity(context.Background(), "Q999999999")
	assert.Error(t, err)
}

func TestSearchID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wbsearchentities", r.URL.Query().Get("action"))
		assert.Equal(t, "radium", r.URL.Query().Get("search"))
		w.Write([]byte(`{"search":[{"id":"Q1128"}]}`))
	}))
	defer srv.Close()

	c := NewWikidataClient("en", false, testLimiter(), cache.NewStore(t.TempDir(), true, zap.NewNop()), zap.NewNop())
	c.APIBase = srv.URL

	id, err := c.SearchID(context.Background(), "en", "radium")
	require.NoError(t, err)
	assert.Equal(t, "Q1128", id)
}
