package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title string, questions int) models.HistoryEntry {
	return models.HistoryEntry{
		ID:             uuid.New(),
		Title:          title,
		FileName:       title + ".pdf",
		CreatedAt:      time.Now(),
		TotalQuestions: questions,
		Quiz: models.Quiz{
			Title:    title,
			Metadata: models.Metadata{QuestionCount: questions},
		},
	}
}

func TestMemoryStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	first := entry("first", 5)
	second := entry("second", 5)
	require.NoError(t, s.Add(ctx, "owner", first))
	require.NoError(t, s.Add(ctx, "owner", second))

	list, err := s.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestMemoryStore_EvictsOldestBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		e := entry(fmt.Sprintf("quiz-%d", i), 5)
		ids = append(ids, e.ID)
		require.NoError(t, s.Add(ctx, "owner", e))
	}

	list, err := s.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[4], list[0].ID)
	assert.Equal(t, ids[2], list[2].ID)

	// The two oldest are gone.
	_, err = s.Get(ctx, "owner", ids[0])
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
	_, err = s.Get(ctx, "owner", ids[1])
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
}

func TestMemoryStore_Get(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	e := entry("with quiz", 5)
	require.NoError(t, s.Add(ctx, "owner", e))

	got, err := s.Get(ctx, "owner", e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Title, got.Title)
	assert.Equal(t, e.Quiz.Metadata.QuestionCount, got.Quiz.Metadata.QuestionCount)

	_, err = s.Get(ctx, "owner", uuid.New())
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	e := entry("doomed", 5)
	require.NoError(t, s.Add(ctx, "owner", e))
	require.NoError(t, s.Delete(ctx, "owner", e.ID))

	list, err := s.List(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, list)

	err = s.Delete(ctx, "owner", e.ID)
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
}

func TestMemoryStore_UpdateScore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	e := entry("scored", 5)
	require.NoError(t, s.Add(ctx, "owner", e))

	require.NoError(t, s.UpdateScore(ctx, "owner", e.ID, 4))
	got, err := s.Get(ctx, "owner", e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 4, *got.Score)

	err = s.UpdateScore(ctx, "owner", e.ID, 6)
	assert.Equal(t, domain.ErrInput, domain.CodeOf(err))
	err = s.UpdateScore(ctx, "owner", e.ID, -1)
	assert.Equal(t, domain.ErrInput, domain.CodeOf(err))
	err = s.UpdateScore(ctx, "owner", uuid.New(), 3)
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
}

func TestMemoryStore_OwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	mine := entry("mine", 5)
	require.NoError(t, s.Add(ctx, "alice", mine))

	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.Get(ctx, "bob", mine.ID)
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
	err = s.Delete(ctx, "bob", mine.ID)
	assert.Equal(t, domain.ErrNotFound, domain.CodeOf(err))
}
