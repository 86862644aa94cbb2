package http

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-chatbot/internal/domain/auth"
	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chatSvc     chat.Service
	feedbackSvc feedback.Service
	faqSvc      faq.Service
	reloader    faq.Reloader
	authSvc     auth.Service
	staticDir   string
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chatSvc chat.Service, feedbackSvc feedback.Service, faqSvc faq.Service, reloader faq.Reloader, authSvc auth.Service, staticDir StaticDir, logger *slog.Logger) *Handler {
	return &Handler{
		chatSvc:     chatSvc,
		feedbackSvc: feedbackSvc,
		faqSvc:      faqSvc,
		reloader:    reloader,
		authSvc:     authSvc,
		staticDir:   string(staticDir),
		logger:      logger.With("component", "http.handler"),
	}
}

// StaticDir is the directory holding the bundled frontend.
type StaticDir string

// Chat answers one user message. Matching never fails the request; only a
// malformed body is rejected.
func (h *Handler) Chat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	resp, err := h.chatSvc.Send(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "chat_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChatHistory returns the turns of a single session in order.
func (h *Handler) ChatHistory(c *gin.Context) {
	msgs, err := h.chatSvc.History(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		abortWithError(c, domainError(err, "chat_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("sessionID"), "messages": nonNil(msgs)})
}

// AdminChatHistory lists the newest messages across sessions.
func (h *Handler) AdminChatHistory(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	msgs, err := h.chatSvc.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, domainError(err, "chat_failed"))
		return
	}
	c.JSON(http.StatusOK, nonNil(msgs))
}

// SubmitFeedback stores a rating for a bot reply.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedback.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}
	fb, err := h.feedbackSvc.Submit(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "feedback_failed"))
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// AdminFeedback lists the newest feedback entries.
func (h *Handler) AdminFeedback(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	items, err := h.feedbackSvc.List(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, domainError(err, "feedback_failed"))
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

// ReloadCatalog re-reads the FAQ catalog from its source.
func (h *Handler) ReloadCatalog(c *gin.Context) {
	n, err := h.reloader.Reload(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, faq.ErrEmptyReload) {
			status = http.StatusConflict
		}
		abortWithError(c, NewHTTPError(status, "catalog_reload_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": n})
}

// TrendingFAQ returns the most common questions.
func (h *Handler) TrendingFAQ(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "faq_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": nonNil(items)})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "API is running successfully"})
}

// Index serves the frontend entry page, or a JSON notice when it is absent.
func (h *Handler) Index(c *gin.Context) {
	index := filepath.Join(h.staticDir, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		c.File(index)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Static frontend not found", "info": "API is running"})
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
		return 0, false
	}
	return limit, true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
