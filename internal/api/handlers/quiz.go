package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"pdfquiz/internal/domain"
	"pdfquiz/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateResponse is the body returned after a successful generation.
type GenerateResponse struct {
	EntryID   uuid.UUID               `json:"entry_id"`
	Title     string                  `json:"title"`
	Questions []models.QuestionRecord `json:"questions"`
	Metadata  models.Metadata         `json:"metadata"`
	FileName  string                  `json:"file_name"`
	CreatedAt time.Time               `json:"created_at"`
}

// HandleGenerateQuiz accepts a multipart PDF upload, runs the pipeline under
// the request timeout, records a history entry and returns the quiz. On any
// failure no history entry is written and no partial quiz is returned.
func (h *Handler) HandleGenerateQuiz(c *gin.Context) {
	start := time.Now()
	owner := h.owner(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, domain.NewInputError("no PDF file provided"))
		return
	}
	if fileHeader.Size > h.Config.Pipeline.MaxFileSize {
		h.respondError(c, domain.NewInputError("file size exceeds the upload limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, domain.NewInputError("could not read the uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(c, domain.NewInputError("could not read the uploaded file"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout())
	defer cancel()

	quiz, cached := h.lookupCache(ctx, data)
	if quiz == nil {
		quiz, err = h.Assembler.Assemble(ctx, data, fileHeader.Filename)
		if err != nil {
			h.respondError(c, err)
			return
		}
	}

	entry := models.HistoryEntry{
		ID:             uuid.New(),
		Title:          quiz.Title,
		FileName:       fileHeader.Filename,
		CreatedAt:      time.Now(),
		TotalQuestions: len(quiz.Questions),
		Quiz:           *quiz,
	}
	if err := h.History.Add(ctx, owner, entry); err != nil {
		h.respondError(c, err)
		return
	}

	if !cached && h.Cache != nil {
		if err := h.Cache.Put(ctx, data, quiz); err != nil {
			h.Log.Warn("failed to cache quiz", zap.Error(err))
		}
	}

	if h.Archive != nil {
		go h.archiveUpload(entry.ID, fileHeader.Filename, data)
	}

	h.Log.Info("quiz generated",
		zap.String("file", fileHeader.Filename),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("chunks", quiz.Metadata.ChunkCount),
		zap.Bool("cache_hit", cached),
		zap.Duration("elapsed", time.Since(start)),
	)

	c.JSON(http.StatusCreated, GenerateResponse{
		EntryID:   entry.ID,
		Title:     quiz.Title,
		Questions: quiz.Questions,
		Metadata:  quiz.Metadata,
		FileName:  entry.FileName,
		CreatedAt: entry.CreatedAt,
	})
}

func (h *Handler) lookupCache(ctx context.Context, data []byte) (*models.Quiz, bool) {
	if h.Cache == nil {
		return nil, false
	}
	if quiz := h.Cache.Get(ctx, data); quiz != nil {
		return quiz, true
	}
	return nil, false
}

// archiveUpload stores the original PDF next to its history entry. Failures
// are logged, never surfaced: the quiz was already delivered.
func (h *Handler) archiveUpload(entryID uuid.UUID, filename string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := h.Archive.Archive(ctx, entryID, filename, bytes.NewReader(data)); err != nil {
		h.Log.Warn("failed to archive upload", zap.String("file", filename), zap.Error(err))
	}
}
