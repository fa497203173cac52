package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pdfquiz/internal/cache"
	"pdfquiz/internal/config"
	"pdfquiz/internal/domain"
	"pdfquiz/internal/history"
	"pdfquiz/internal/models"
	"pdfquiz/internal/r2"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuizAssembler runs the text-to-quiz pipeline for one uploaded document.
type QuizAssembler interface {
	Assemble(ctx context.Context, data []byte, fileName string) (*models.Quiz, error)
}

// Handler carries the API handlers' dependencies. Cache and Archive are
// optional and may be nil.
type Handler struct {
	Assembler QuizAssembler
	History   history.Store
	Cache     *cache.QuizCache
	Archive   *r2.Client
	Config    *config.Config
	Log       *zap.Logger
}

func NewHandler(a QuizAssembler, store history.Store, quizCache *cache.QuizCache, archive *r2.Client, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		Assembler: a,
		History:   store,
		Cache:     quizCache,
		Archive:   archive,
		Config:    cfg,
		Log:       log,
	}
}

// owner returns the session owner id set by the SessionOwner middleware.
func (h *Handler) owner(c *gin.Context) string {
	owner, _ := c.Value("owner").(string)
	return owner
}

// respondError maps a pipeline or store error onto a status code and the
// single-message error body every failure uses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			appErr = domain.NewTimeoutError(err)
		} else {
			appErr = domain.NewError(domain.ErrInternal, "something went wrong", err)
		}
	}

	status := statusForCode(appErr.Code)
	if status >= http.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	} else {
		h.Log.Warn("request rejected",
			zap.String("path", c.FullPath()),
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
		)
	}

	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: appErr.Message})
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrInput:
		return http.StatusBadRequest
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrExtraction:
		return http.StatusUnprocessableEntity
	case domain.ErrGeneration:
		return http.StatusBadGateway
	case domain.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// requestTimeout is the end-to-end ceiling for one generation request.
func (h *Handler) requestTimeout() time.Duration {
	return h.Config.Server.RequestTimeout
}
