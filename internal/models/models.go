package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionRecord is one multiple-choice question. Options carries exactly
// four entries and CorrectAnswer indexes into it.
type QuestionRecord struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizUnit is the schema-validated output of a single generation call:
// a title plus a fixed-length question list produced from one text chunk.
type QuizUnit struct {
	Title     string           `json:"title"`
	Questions []QuestionRecord `json:"questions"`
}

// Metadata describes the document and pipeline run that produced a quiz.
type Metadata struct {
	PageCount     int `json:"pageCount"`
	TextLength    int `json:"textLength"`
	ChunkCount    int `json:"chunkCount"`
	QuestionCount int `json:"questionCount"`
}

// Quiz is the final artifact returned to callers. Immutable once built.
type Quiz struct {
	Title     string           `json:"title"`
	Questions []QuestionRecord `json:"questions"`
	Metadata  Metadata         `json:"metadata"`
}

// HistoryEntry pairs a generated quiz with provenance and an optional
// completion score. Score stays nil until the quiz is completed once.
type HistoryEntry struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	FileName       string    `json:"file_name"`
	CreatedAt      time.Time `json:"created_at"`
	TotalQuestions int       `json:"total_questions"`
	Score          *int      `json:"score,omitempty"`
	Quiz           Quiz      `json:"quiz"`
}

// HistorySummary is a HistoryEntry without the question payload, used for
// history listings.
type HistorySummary struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	FileName       string    `json:"file_name"`
	CreatedAt      time.Time `json:"created_at"`
	TotalQuestions int       `json:"total_questions"`
	Score          *int      `json:"score,omitempty"`
}

// Summary strips the quiz payload from an entry.
func (e HistoryEntry) Summary() HistorySummary {
	return HistorySummary{
		ID:             e.ID,
		Title:          e.Title,
		FileName:       e.FileName,
		CreatedAt:      e.CreatedAt,
		TotalQuestions: e.TotalQuestions,
		Score:          e.Score,
	}
}

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
