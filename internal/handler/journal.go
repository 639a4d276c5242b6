package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"sentient-journal/internal/logger"
	"sentient-journal/internal/model"
	"sentient-journal/internal/service"
	"sentient-journal/internal/store"

	"github.com/gin-gonic/gin"
)

// List endpoints default to the most recent 30 days.
const listWindow = 30 * 24 * time.Hour

type JournalHandler struct {
	store    store.Store
	analyzer *service.Analyzer
}

func NewJournalHandler(s store.Store, analyzer *service.Analyzer) *JournalHandler {
	return &JournalHandler{store: s, analyzer: analyzer}
}

func (h *JournalHandler) Create(c *gin.Context) {
	var req model.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	uid := c.GetInt("user_id")
	analysis := h.analyzer.Analyze(c.Request.Context(), req.Content)

	entry, err := h.store.CreateEntry(c.Request.Context(), uid, req.Content, analysis)
	if err != nil {
		logger.Error("entry.create failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	logger.Info("entry.create", "uid", uid, "entry_id", entry.ID, "score", analysis.SentimentScore)
	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry, "analysis": analysis})
}

func (h *JournalHandler) Update(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found or unauthorized"})
		return
	}

	var req model.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	uid := c.GetInt("user_id")
	analysis := h.analyzer.Analyze(c.Request.Context(), req.Content)

	entry, err := h.store.UpdateEntry(c.Request.Context(), uid, entryID, req.Content, analysis)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found or unauthorized"})
		return
	}
	if err != nil {
		logger.Error("entry.update failed", "uid", uid, "entry_id", entryID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "entry": entry, "analysis": analysis})
}

func (h *JournalHandler) Delete(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found or unauthorized"})
		return
	}

	uid := c.GetInt("user_id")
	err = h.store.DeleteEntry(c.Request.Context(), uid, entryID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found or unauthorized"})
		return
	}
	if err != nil {
		logger.Error("entry.delete failed", "uid", uid, "entry_id", entryID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Entry deleted successfully"})
}

func (h *JournalHandler) Entries(c *gin.Context) {
	uid := c.GetInt("user_id")
	entries, err := h.store.ListEntries(c.Request.Context(), uid, time.Now().UTC().Add(-listWindow))
	if err != nil {
		logger.Error("entry.list failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entries"})
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *JournalHandler) Search(c *gin.Context) {
	uid := c.GetInt("user_id")

	filter := model.SearchFilter{
		Query:     c.Query("q"),
		Sentiment: c.Query("sentiment"),
	}
	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// The end date bounds the whole day, not its first instant.
			filter.EndDate = t.Add(24*time.Hour - time.Second)
		}
	}

	entries, err := h.store.SearchEntries(c.Request.Context(), uid, filter)
	if err != nil {
		logger.Error("entry.search failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
