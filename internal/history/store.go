// Package history implements the capacity-bounded, insertion-ordered quiz
// history. Entries are scoped to an owner (the browser session id); when an
// owner's list grows past capacity the oldest entries are evicted.
package history

import (
	"context"

	"pdfquiz/internal/models"

	"github.com/google/uuid"
)

// Store is the history contract. Implementations must keep eviction and
// id-based deletion linearizable with respect to insertion.
type Store interface {
	// Add inserts an entry and evicts the owner's oldest entries beyond
	// capacity.
	Add(ctx context.Context, owner string, entry models.HistoryEntry) error

	// List returns the owner's entries newest first, without quiz payloads.
	List(ctx context.Context, owner string) ([]models.HistorySummary, error)

	// Get returns one entry including the full quiz.
	Get(ctx context.Context, owner string, id uuid.UUID) (*models.HistoryEntry, error)

	// Delete removes an entry by id.
	Delete(ctx context.Context, owner string, id uuid.UUID) error

	// UpdateScore attaches a completion score to an entry. The score must be
	// in [0, totalQuestions].
	UpdateScore(ctx context.Context, owner string, id uuid.UUID, score int) error
}
