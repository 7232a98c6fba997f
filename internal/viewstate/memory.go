package viewstate

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
)

// MemoryStore keeps state in process. Entries expire after ttl of inactivity.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		cache: gocache.New(ttl, time.Hour),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Load(_ context.Context, sid, name string) (view.Memory, error) {
	x, found := s.cache.Get(key(sid, name))
	if !found {
		return view.Memory{}, nil
	}
	return decode(x.([]byte))
}

func (s *MemoryStore) Save(_ context.Context, sid, name string, m view.Memory) error {
	b, err := encode(m)
	if err != nil {
		return err
	}
	s.cache.Set(key(sid, name), b, s.ttl)
	return nil
}

func (s *MemoryStore) Forget(_ context.Context, sid string) error {
	for _, name := range Views {
		s.cache.Delete(key(sid, name))
	}
	return nil
}
