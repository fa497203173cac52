package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pdfquiz/internal/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		Title: "Photosynthesis",
		Questions: []models.QuestionRecord{{
			Question:      "What do plants absorb?",
			Options:       []string{"CO2", "Iron", "Helium", "Salt"},
			CorrectAnswer: 0,
			Explanation:   "Plants fix carbon dioxide.",
		}},
		Metadata: models.Metadata{PageCount: 2, TextLength: 1200, ChunkCount: 1, QuestionCount: 1},
	}
}

func TestKey_IsStablePerContent(t *testing.T) {
	a := Key([]byte("same bytes"))
	b := Key([]byte("same bytes"))
	c := Key([]byte("other bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "quiz:")
}

func TestQuizCache_RoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	qc := NewQuizCache(NewRedisCache(client), time.Hour)

	data := []byte("%PDF-1.4 content")
	quiz := sampleQuiz()
	raw, err := json.Marshal(quiz)
	require.NoError(t, err)

	mock.ExpectSet(Key(data), string(raw), time.Hour).SetVal("OK")
	require.NoError(t, qc.Put(context.Background(), data, quiz))

	mock.ExpectGet(Key(data)).SetVal(string(raw))
	got := qc.Get(context.Background(), data)
	require.NotNil(t, got)
	assert.Equal(t, quiz.Title, got.Title)
	assert.Equal(t, quiz.Metadata, got.Metadata)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizCache_MissReturnsNil(t *testing.T) {
	client, mock := redismock.NewClientMock()
	qc := NewQuizCache(NewRedisCache(client), time.Hour)

	data := []byte("never seen")
	mock.ExpectGet(Key(data)).RedisNil()

	assert.Nil(t, qc.Get(context.Background(), data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizCache_CorruptEntryCountsAsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	qc := NewQuizCache(NewRedisCache(client), time.Hour)

	data := []byte("corrupt")
	mock.ExpectGet(Key(data)).SetVal("{not json")

	assert.Nil(t, qc.Get(context.Background(), data))
	assert.NoError(t, mock.ExpectationsWereMet())
}
