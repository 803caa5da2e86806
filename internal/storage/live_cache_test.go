package storage

import (
	"testing"
	"time"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

func entry(id int64, pressure float64, updated time.Time) *LiveEntry {
	return &LiveEntry{
		Match:    &domain.MatchState{ID: id, LastUpdated: updated},
		Pressure: pressure,
	}
}

func TestLiveCacheReplaceAndGet(t *testing.T) {
	cache := NewLiveCache()
	now := time.Now()

	cache.Replace([]*LiveEntry{entry(1, 10, now), entry(2, -5, now)})

	if cache.Len() != 2 {
		t.Fatalf("len = %d, want 2", cache.Len())
	}
	if got := cache.Get(1); got == nil || got.Pressure != 10 {
		t.Errorf("unexpected entry for 1: %+v", got)
	}
	if cache.Get(99) != nil {
		t.Error("unknown id should return nil")
	}

	// Replace swaps the whole set.
	cache.Replace([]*LiveEntry{entry(3, 42, now)})
	if cache.Len() != 1 {
		t.Errorf("len after replace = %d, want 1", cache.Len())
	}
	if cache.Get(1) != nil {
		t.Error("old entries should be gone after replace")
	}
}

func TestLiveCacheAllOrdersByRecency(t *testing.T) {
	cache := NewLiveCache()
	now := time.Now()

	cache.Replace([]*LiveEntry{
		entry(1, 0, now.Add(-2*time.Minute)),
		entry(2, 0, now),
		entry(3, 0, now.Add(-time.Minute)),
	})

	all := cache.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Match.ID != 2 || all[1].Match.ID != 3 || all[2].Match.ID != 1 {
		t.Errorf("unexpected order: %d, %d, %d", all[0].Match.ID, all[1].Match.ID, all[2].Match.ID)
	}
}

func TestLiveCacheReplaceSkipsNilEntries(t *testing.T) {
	cache := NewLiveCache()
	cache.Replace([]*LiveEntry{nil, entry(1, 0, time.Now()), {Match: nil}})

	if cache.Len() != 1 {
		t.Errorf("len = %d, want 1", cache.Len())
	}
}
