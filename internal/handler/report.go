package handler

import (
	"net/http"
	"time"

	"sentient-journal/internal/logger"
	"sentient-journal/internal/model"
	"sentient-journal/internal/service"
	"sentient-journal/internal/store"

	"github.com/gin-gonic/gin"
)

const week = 7 * 24 * time.Hour

type ReportHandler struct {
	store    store.Store
	reporter *service.Reporter
}

func NewReportHandler(s store.Store, reporter *service.Reporter) *ReportHandler {
	return &ReportHandler{store: s, reporter: reporter}
}

func (h *ReportHandler) Weekly(c *gin.Context) {
	uid := c.GetInt("user_id")

	entries, err := h.store.ListEntries(c.Request.Context(), uid, time.Now().UTC().Add(-week))
	if err != nil {
		logger.Error("report.weekly failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusOK, gin.H{"report": nil, "message": "No entries found for the last week"})
		return
	}

	// The report reads the week chronologically.
	reverse(entries)
	report := h.reporter.WeeklyReport(c.Request.Context(), entries)
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (h *ReportHandler) Comparison(c *gin.Context) {
	uid := c.GetInt("user_id")
	now := time.Now().UTC()
	weekAgo := now.Add(-week)

	thisWeek, err := h.store.ListEntries(c.Request.Context(), uid, weekAgo)
	if err != nil {
		logger.Error("report.comparison failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate comparison"})
		return
	}
	lastWeek, err := h.store.SearchEntries(c.Request.Context(), uid, model.SearchFilter{
		StartDate: now.Add(-2 * week),
		EndDate:   weekAgo.Add(-time.Second),
	})
	if err != nil {
		logger.Error("report.comparison failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate comparison"})
		return
	}

	c.JSON(http.StatusOK, h.reporter.WeeklyComparison(thisWeek, lastWeek))
}

func reverse(entries []model.JournalEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
