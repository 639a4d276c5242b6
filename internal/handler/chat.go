package handler

import (
	"net/http"
	"strings"

	"sentient-journal/internal/logger"
	"sentient-journal/internal/model"
	"sentient-journal/internal/service"
	"sentient-journal/internal/store"

	"github.com/gin-gonic/gin"
)

// recentWindow is how many entries feed the assistant's average sentiment.
const recentWindow = 10

type ChatHandler struct {
	store     store.Store
	assistant *service.Assistant
}

func NewChatHandler(s store.Store, assistant *service.Assistant) *ChatHandler {
	return &ChatHandler{store: s, assistant: assistant}
}

func (h *ChatHandler) Reflect(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	uid := c.GetInt("user_id")
	ctx := c.Request.Context()

	total, err := h.store.CountEntries(ctx, uid)
	if err != nil {
		logger.Error("chat.stats failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat unavailable"})
		return
	}
	recent, err := h.store.RecentEntries(ctx, uid, recentWindow)
	if err != nil {
		logger.Error("chat.stats failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat unavailable"})
		return
	}

	avg := 0.0
	if len(recent) > 0 {
		for _, e := range recent {
			avg += e.SentimentScore
		}
		avg /= float64(len(recent))
	}

	reply, prompts := h.assistant.Respond(req.Message, total, avg)
	c.JSON(http.StatusOK, model.ChatResponse{Reply: reply, SuggestedPrompts: prompts})
}

// Draft endpoints are no-op compatibility stubs; the client keeps drafts in
// localStorage now.

func (h *ChatHandler) SaveDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Draft saved locally"})
}

func (h *ChatHandler) LoadDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"content": nil})
}

func (h *ChatHandler) ClearDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
