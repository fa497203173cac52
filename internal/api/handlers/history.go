package handlers

import (
	"net/http"

	"pdfquiz/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandleListHistory returns the session's history, newest first, without
// question payloads.
func (h *Handler) HandleListHistory(c *gin.Context) {
	summaries, err := h.History.List(c.Request.Context(), h.owner(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": summaries})
}

// HandleGetHistoryEntry returns one entry including the full quiz.
func (h *Handler) HandleGetHistoryEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, domain.NewInputError("invalid history entry id"))
		return
	}

	entry, err := h.History.Get(c.Request.Context(), h.owner(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// HandleDeleteHistoryEntry removes one entry by id.
func (h *Handler) HandleDeleteHistoryEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, domain.NewInputError("invalid history entry id"))
		return
	}

	if err := h.History.Delete(c.Request.Context(), h.owner(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updateScoreRequest struct {
	Score *int `json:"score" binding:"required"`
}

// HandleUpdateScore attaches a completion score to an entry after the quiz
// has been taken.
func (h *Handler) HandleUpdateScore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, domain.NewInputError("invalid history entry id"))
		return
	}

	var req updateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, domain.NewInputError("score is required"))
		return
	}

	if err := h.History.UpdateScore(c.Request.Context(), h.owner(c), id, *req.Score); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
