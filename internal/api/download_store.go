package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"effrecon/internal/reconcile"
)

type download struct {
	runID     string
	result    *reconcile.Result
	expiresAt time.Time
}

// downloadStore 内存中的对账结果，按 token 取用，过期即清除，不落盘
type downloadStore struct {
	mu    sync.Mutex
	items map[string]download
	now   func() time.Time
}

func newDownloadStore(now func() time.Time) *downloadStore {
	return &downloadStore{
		items: make(map[string]download),
		now:   now,
	}
}

func (s *downloadStore) put(runID string, result *reconcile.Result, ttl time.Duration) (token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	token = uuid.NewString()
	expiresAt = now.Add(ttl)
	s.items[token] = download{
		runID:     runID,
		result:    result,
		expiresAt: expiresAt,
	}
	return token, expiresAt
}

func (s *downloadStore) get(token string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	v, ok := s.items[token]
	if !ok {
		return download{}, false
	}
	return v, true
}

func (s *downloadStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(s.now())
	return len(s.items)
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if !now.Before(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
