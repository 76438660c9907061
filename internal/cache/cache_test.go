package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"), ttl)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_GetSet(t *testing.T) {
	s := openTestStore(t, time.Hour)

	if _, ok := s.Get("missing"); ok {
		t.Error("Get() reported a hit for an absent key")
	}

	if err := s.Set("k1", "payload one"); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Get("k1")
	if !ok || got != "payload one" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	// overwrite
	if err := s.Set("k1", "payload two"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get("k1"); got != "payload two" {
		t.Errorf("Get() after overwrite = %q", got)
	}
}

func Test_expiry(t *testing.T) {
	s := openTestStore(t, time.Hour)

	if err := s.SetTTL("stale", "old", -time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("fresh", "new"); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Get("stale"); ok {
		t.Error("Get() returned an expired entry")
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("Get() missed a live entry")
	}

	cleared, err := s.ClearExpired()
	if err != nil {
		t.Fatal(err)
	}
	if cleared != 1 {
		t.Errorf("ClearExpired() = %d, want 1", cleared)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalEntries != 1 || stats.ValidEntries != 1 || stats.ExpiredEntries != 0 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func Test_Clear(t *testing.T) {
	s := openTestStore(t, time.Hour)

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(k, "x"); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("Stats() after Clear = %+v", stats)
	}
}

func Test_Key(t *testing.T) {
	a := Key("esearch.fcgi", map[string]string{"db": "pubmed", "term": "p53"})
	b := Key("esearch.fcgi", map[string]string{"term": "p53", "db": "pubmed"})
	if a != b {
		t.Error("Key() is sensitive to parameter order")
	}

	c := Key("esearch.fcgi", map[string]string{"db": "pubmed", "term": "brca1"})
	if a == c {
		t.Error("Key() collided for different parameters")
	}
	if Key("esearch.fcgi", nil) == Key("efetch.fcgi", nil) {
		t.Error("Key() collided for different URLs")
	}
}
