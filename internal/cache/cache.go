// Package cache is a flat-file JSON cache for knowledge-base lookups. One
// file per key, named by the sha256 of the exact key string, under a
// per-source namespace directory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type Store struct {
	dir     string
	enabled bool
	log     *zap.Logger
}

func NewStore(dir string, enabled bool, log *zap.Logger) *Store {
	return &Store{dir: dir, enabled: enabled, log: log}
}

// Path returns the file a key resolves to, independent of whether it exists.
func (s *Store) Path(namespace, key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, namespace, hex.EncodeToString(sum[:])+".json")
}

// Load reads a cached value into v. Returns false on miss or unreadable
// content; a bad file is treated as a miss, not an error.
func (s *Store) Load(namespace, key string, v any) bool {
	if !s.enabled {
		return false
	}
	data, err := os.ReadFile(s.Path(namespace, key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Debug("discarding unreadable cache entry",
			zap.String("namespace", namespace),
			zap.Error(err))
		return false
	}
	return true
}

// Save writes a value through to disk, best effort. Failures are logged and
// swallowed; the lookup result is already in hand.
func (s *Store) Save(namespace, key string, v any) {
	if !s.enabled {
		return
	}
	path := s.Path(namespace, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.log.Debug("cache mkdir failed", zap.Error(err))
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Debug("cache marshal failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Debug("cache write failed", zap.String("path", path), zap.Error(err))
	}
}
