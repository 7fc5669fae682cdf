package memory

import (
	"context"
	"sync"

	"telegram-video-bridge/internal/domain/ports/repository"
)

var _ repository.PendingRequestStore = (*PendingStore)(nil)

// PendingStore is a process-local PendingRequestStore. Entries live until taken;
// nothing is persisted or expired.
type PendingStore struct {
	mu      sync.Mutex
	pending map[string]string
}

func NewPendingStore() *PendingStore {
	return &PendingStore{pending: make(map[string]string)}
}

func (s *PendingStore) Put(ctx context.Context, userID, videoID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.pending[userID] = videoID
	s.mu.Unlock()
	return nil
}

func (s *PendingStore) Take(ctx context.Context, userID string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	videoID, ok := s.pending[userID]
	if ok {
		delete(s.pending, userID)
	}
	return videoID, ok, nil
}

func (s *PendingStore) Discard(ctx context.Context, userID, videoID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.pending[userID]; !ok || cur != videoID {
		return false, nil
	}
	delete(s.pending, userID)
	return true, nil
}

func (s *PendingStore) PutIfAbsent(ctx context.Context, userID, videoID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[userID]; ok {
		return false, nil
	}
	s.pending[userID] = videoID
	return true, nil
}

func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
