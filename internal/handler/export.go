package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"sentient-journal/internal/logger"
	"sentient-journal/internal/model"
	"sentient-journal/internal/store"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	store store.Store
}

func NewExportHandler(s store.Store) *ExportHandler {
	return &ExportHandler{store: s}
}

// JSON downloads the user's full entry history with export metadata.
func (h *ExportHandler) JSON(c *gin.Context) {
	uid := c.GetInt("user_id")

	entries, err := h.store.ListEntries(c.Request.Context(), uid, time.Time{})
	if err != nil {
		logger.Error("export.json failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}
	if entries == nil {
		entries = []model.JournalEntry{}
	}

	filename := fmt.Sprintf("journal_export_%s.json", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.JSON(http.StatusOK, gin.H{
		"user_email":    c.GetString("user_email"),
		"export_date":   time.Now().UTC().Format(time.RFC3339),
		"total_entries": len(entries),
		"entries":       entries,
	})
}

// Text downloads a formatted plain-text listing. The route keeps the "pdf"
// name existing clients call, but the payload is and always was a .txt file.
func (h *ExportHandler) Text(c *gin.Context) {
	uid := c.GetInt("user_id")

	entries, err := h.store.ListEntries(c.Request.Context(), uid, time.Time{})
	if err != nil {
		logger.Error("export.text failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SENTIENT JOURNAL - EXPORT\nUser: %s\nExport Date: %s\nTotal Entries: %d\n\n%s\n\n",
		c.GetString("user_email"),
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries),
		strings.Repeat("=", 80),
	)
	for _, e := range entries {
		fmt.Fprintf(&sb, "\nDate: %s\nSentiment Score: %.2f\nEmotions: %s\nThemes: %s\n\n%s\n\n%s\n\n",
			e.CreatedAt.Format(time.RFC3339),
			e.SentimentScore,
			strings.Join(e.Emotions, ", "),
			strings.Join(e.KeyThemes, ", "),
			e.Content,
			strings.Repeat("-", 80),
		)
	}

	filename := fmt.Sprintf("journal_export_%s.txt", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sb.String()))
}
