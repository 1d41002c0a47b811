package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPathUsesSHA256OfExactKey(t *testing.T) {
	s := NewStore("/tmp/c", true, zap.NewNop())
	key := "https://en.wikipedia.org/wiki/Radium"
	sum := sha256.Sum256([]byte(key))

	want := filepath.Join("/tmp/c", "wikipedia", hex.EncodeToString(sum[:])+".json")
	assert.Equal(t, want, s.Path("wikipedia", key))
}

func TestSaveThenLoad(t *testing.T) {
	s := NewStore(t.TempDir(), true, zap.NewNop())

	type record struct {
		Title string `json:"title"`
	}
	s.Save("wikipedia", "key-1", record{Title: "Radium"})

	var got record
	require.True(t, s.Load("wikipedia", "key-1", &got))
	assert.Equal(t, "Radium", got.Title)
}

func TestLoadMiss(t *testing.T) {
	s := NewStore(t.TempDir(), true, zap.NewNop())
	var v map[string]string
	assert.False(t, s.Load("wikipedia", "never-saved", &v))
}

func TestLoadCorruptFileIsMiss(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, true, zap.NewNop())
	path := s.Path("wikidata", "bad")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var v map[string]string
	assert.False(t, s.Load("wikidata", "bad", &v))
}

func TestDisabledStoreNeverHits(t *testing.T) {
	s := NewStore(t.TempDir(), false, zap.NewNop())
	s.Save("ns", "k", map[string]int{"a": 1})
	var v map[string]int
	assert.False(t, s.Load("ns", "k", &v))
}
