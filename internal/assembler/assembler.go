// Package assembler orchestrates the text-to-quiz pipeline: input checks,
// extraction, the chunking-size policy, per-chunk generation, and the final
// merge/shuffle/truncate into a fixed-size quiz.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"pdfquiz/internal/chunk"
	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/models"
	"pdfquiz/internal/pdf"

	"go.uber.org/zap"
)

const fallbackTitle = "Generated Quiz"

// Generator produces one schema-valid quiz unit from a chunk of text. It is
// the pipeline's only source of non-determinism and its only network
// dependency.
type Generator interface {
	Generate(ctx context.Context, chunkText string, targetCount int) (*models.QuizUnit, error)
}

// Assembler builds a complete quiz from raw PDF bytes. Safe for concurrent
// use; each call is an independent single-flow request.
type Assembler struct {
	cfg       config.PipelineConfig
	extractor pdf.Extractor
	generator Generator
	log       *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func New(cfg config.PipelineConfig, extractor pdf.Extractor, generator Generator, log *zap.Logger) *Assembler {
	return &Assembler{
		cfg:       cfg,
		extractor: extractor,
		generator: generator,
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Assemble runs the whole pipeline for one document. Any failure aborts the
// request; a partial quiz is never returned.
func (a *Assembler) Assemble(ctx context.Context, data []byte, fileName string) (*models.Quiz, error) {
	if err := a.checkInput(data); err != nil {
		return nil, err
	}

	extracted, err := a.extractor.Extract(data)
	if err != nil {
		return nil, domain.NewExtractionError("could not read the PDF file", err)
	}

	text := strings.TrimSpace(extracted.Text)
	if len(text) < a.cfg.MinTextLength {
		return nil, domain.NewExtractionError("PDF has insufficient extractable text", nil)
	}
	if len(text) > a.cfg.ChunkLarge {
		return nil, domain.NewExtractionError("PDF text exceeds the supported size", nil)
	}

	chunks := a.splitText(text)
	a.log.Info("document chunked",
		zap.String("file", fileName),
		zap.Int("pages", extracted.PageCount),
		zap.Int("text_length", len(text)),
		zap.Int("chunks", len(chunks)),
	)

	// One generation call per chunk, each requesting the full target count.
	// With multiple chunks this over-generates on purpose: the shuffle below
	// samples from the combined pool.
	units := make([]*models.QuizUnit, 0, len(chunks))
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewTimeoutError(err)
		}

		unit, err := a.generator.Generate(ctx, c, a.cfg.QuestionCount)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, domain.NewTimeoutError(err)
			}
			return nil, domain.NewGenerationError(fmt.Sprintf("quiz generation failed for section %d of %d", i+1, len(chunks)), err)
		}
		if err := unit.Validate(a.cfg.QuestionCount); err != nil {
			return nil, domain.NewGenerationError("model returned a malformed quiz", err)
		}
		units = append(units, unit)
	}

	questions := a.mergeQuestions(units)

	title := fallbackTitle
	if len(units) > 0 && units[0].Title != "" {
		title = units[0].Title
	}

	return &models.Quiz{
		Title:     title,
		Questions: questions,
		Metadata: models.Metadata{
			PageCount:     extracted.PageCount,
			TextLength:    len(text),
			ChunkCount:    len(chunks),
			QuestionCount: a.cfg.QuestionCount,
		},
	}, nil
}

// checkInput rejects requests before any extraction work happens.
func (a *Assembler) checkInput(data []byte) error {
	if len(data) == 0 {
		return domain.NewInputError("no PDF file provided")
	}
	if int64(len(data)) > a.cfg.MaxFileSize {
		return domain.NewInputError(fmt.Sprintf("file size exceeds the %d byte limit", a.cfg.MaxFileSize))
	}
	if http.DetectContentType(data) != "application/pdf" {
		return domain.NewInputError("invalid file type, please upload PDF only")
	}
	return nil
}

// splitText applies the sizing policy: mid-sized documents are chunked so
// that each chunk can yield a full question set, short ones go through whole.
// The upper bound was already enforced against ChunkLarge.
func (a *Assembler) splitText(text string) []string {
	if len(text) >= a.cfg.ChunkMedium {
		maxChunkSize := (len(text) + a.cfg.QuestionCount - 1) / a.cfg.QuestionCount
		return chunk.Split(text, maxChunkSize)
	}
	return []string{text}
}

// mergeQuestions concatenates every unit's questions in chunk order, applies
// a uniform shuffle, and keeps the first QuestionCount records.
func (a *Assembler) mergeQuestions(units []*models.QuizUnit) []models.QuestionRecord {
	var pool []models.QuestionRecord
	for _, u := range units {
		pool = append(pool, u.Questions...)
	}

	a.mu.Lock()
	a.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	a.mu.Unlock()

	if len(pool) > a.cfg.QuestionCount {
		pool = pool[:a.cfg.QuestionCount]
	}
	return pool
}
