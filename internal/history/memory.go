package history

import (
	"context"
	"fmt"
	"sync"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/models"

	"github.com/google/uuid"
)

// MemoryStore keeps history in process memory. Used when no DATABASE_URL is
// configured, and as the store stub in tests.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]models.HistoryEntry // insertion order, oldest first
}

func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		capacity: capacity,
		entries:  make(map[string][]models.HistoryEntry),
	}
}

func (s *MemoryStore) Add(ctx context.Context, owner string, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.entries[owner], entry)
	if excess := len(list) - s.capacity; excess > 0 {
		list = list[excess:]
	}
	s.entries[owner] = list
	return nil
}

func (s *MemoryStore) List(ctx context.Context, owner string) ([]models.HistorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[owner]
	summaries := make([]models.HistorySummary, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		summaries = append(summaries, list[i].Summary())
	}
	return summaries, nil
}

func (s *MemoryStore) Get(ctx context.Context, owner string, id uuid.UUID) (*models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries[owner] {
		if e.ID == id {
			entry := e
			return &entry, nil
		}
	}
	return nil, domain.NewNotFoundError(fmt.Sprintf("no history entry with id %s", id))
}

func (s *MemoryStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[owner]
	for i, e := range list {
		if e.ID == id {
			s.entries[owner] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError(fmt.Sprintf("no history entry with id %s", id))
}

func (s *MemoryStore) UpdateScore(ctx context.Context, owner string, id uuid.UUID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[owner]
	for i := range list {
		if list[i].ID == id {
			if score < 0 || score > list[i].TotalQuestions {
				return domain.NewInputError(fmt.Sprintf("score %d out of range [0,%d]", score, list[i].TotalQuestions))
			}
			list[i].Score = &score
			return nil
		}
	}
	return domain.NewNotFoundError(fmt.Sprintf("no history entry with id %s", id))
}
