package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studioline/intake-backend/internal/projects/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req domain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields, "details": err.Error()})
		return
	}

	id, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, msgSubmitFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"projectId": id,
		"message":   msgSubmitted,
	})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, msgGetFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (h *Handler) sendQuote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	if req.Quote == nil || req.Status == nil || *req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgQuoteRequired})
		return
	}

	p, err := h.repo.ApplyQuote(c.Request.Context(), c.Param("id"), domain.QuoteRequest{
		Amount: *req.Quote,
		Status: domain.Status(*req.Status),
	})
	if err != nil {
		respondError(c, err, msgQuoteFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": p,
		"message": msgQuoteSent,
	})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, msgDeleteFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgDeleted})
}

func (h *Handler) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": h.repo.Metrics().Snapshot()})
}

// respondError maps the repository error taxonomy onto status codes.
func respondError(c *gin.Context, err error, failure string) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure, "details": err.Error()})
	}
}
