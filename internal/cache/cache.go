// Package cache stores service responses in a local bbolt database so
// repeated requests can be answered without touching the network.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketResponses = []byte("responses")

// entry is the stored value for one cached response.
type entry struct {
	Payload   string `json:"payload"`
	CachedAt  int64  `json:"cached_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// Store is a TTL response cache backed by a single bbolt file.
type Store struct {
	db  *bolt.DB
	ttl time.Duration
}

// Open creates or opens the cache database at path. ttl is the default
// lifetime of entries written with Set.
func Open(path string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketResponses)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache %s: %w", path, err)
	}

	return &Store{db: db, ttl: ttl}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives a stable cache key from a request URL and its parameters.
// Parameter order does not affect the key.
func Key(url string, params map[string]string) string {
	h := sha256.New()
	h.Write([]byte(url))

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(h, "&%s=%s", name, params[name])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached payload for key, reporting a miss for absent or
// expired entries.
func (s *Store) Get(key string) (string, bool) {
	var payload string
	found := false

	s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketResponses).Get([]byte(key))
		if raw == nil {
			return nil
		}
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil
		}
		if time.Now().Unix() > e.ExpiresAt {
			return nil
		}
		payload = e.Payload
		found = true
		return nil
	})

	return payload, found
}

// Set stores payload under key with the store's default lifetime.
func (s *Store) Set(key, payload string) error {
	return s.SetTTL(key, payload, s.ttl)
}

// SetTTL stores payload under key with an explicit lifetime.
func (s *Store) SetTTL(key, payload string, ttl time.Duration) error {
	now := time.Now()
	raw, err := json.Marshal(entry{
		Payload:   payload,
		CachedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResponses).Put([]byte(key), raw)
	})
}

// Clear removes every cached entry.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketResponses); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketResponses)
		return err
	})
}

// ClearExpired removes entries past their lifetime and reports how many
// were dropped. Undecodable entries are dropped too.
func (s *Store) ClearExpired() (int, error) {
	now := time.Now().Unix()
	cleared := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResponses)

		var stale [][]byte
		b.ForEach(func(k, v []byte) error {
			var e entry
			if err := json.Unmarshal(v, &e); err != nil || now > e.ExpiresAt {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			cleared++
		}
		return nil
	})

	return cleared, err
}

// Stats summarizes the cache contents.
type Stats struct {
	TotalEntries   int    `json:"total_entries"`
	ExpiredEntries int    `json:"expired_entries"`
	ValidEntries   int    `json:"valid_entries"`
	SizeBytes      int64  `json:"size_bytes"`
	Path           string `json:"path"`
}

// Stats counts live and expired entries and reports the database size.
func (s *Store) Stats() (Stats, error) {
	stats := Stats{Path: s.db.Path()}
	now := time.Now().Unix()

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResponses).ForEach(func(k, v []byte) error {
			stats.TotalEntries++
			var e entry
			if err := json.Unmarshal(v, &e); err != nil || now > e.ExpiresAt {
				stats.ExpiredEntries++
			}
			return nil
		})
	})
	if err != nil {
		return Stats{}, err
	}
	stats.ValidEntries = stats.TotalEntries - stats.ExpiredEntries

	if info, err := os.Stat(s.db.Path()); err == nil {
		stats.SizeBytes = info.Size()
	}
	return stats, nil
}
