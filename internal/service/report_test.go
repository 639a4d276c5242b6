package service

import (
	"context"
	"testing"
	"time"

	"sentient-journal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func entryAt(daysAgo int, score float64, content string) model.JournalEntry {
	return model.JournalEntry{
		Content:        content,
		SentimentScore: score,
		Emotions:       datatypes.NewJSONSlice([]string{"calm"}),
		KeyThemes:      datatypes.NewJSONSlice([]string{"life"}),
		CreatedAt:      time.Now().UTC().Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func TestWeeklyReportEmpty(t *testing.T) {
	r := NewReporter(NewAIClient("http://127.0.0.1:0", "k", "gpt-4o"))
	assert.Nil(t, r.WeeklyReport(context.Background(), nil))
	assert.Nil(t, r.WeeklyReport(context.Background(), []model.JournalEntry{}))
}

func TestWeeklyReportSuccess(t *testing.T) {
	srv := newChatServer(t, `{"overall_mood": "Positive", "trajectory": "Upward trend", "key_insights": ["i1", "i2", "i3"], "recommendations": ["r1", "r2", "r3"]}`)
	r := NewReporter(NewAIClient(srv.URL, "k", "gpt-4o"))

	entries := []model.JournalEntry{
		entryAt(6, -0.5, "a hard monday"),
		entryAt(4, 0.2, "an ordinary wednesday"),
		entryAt(1, 0.9, "a wonderful friday"),
	}
	report := r.WeeklyReport(context.Background(), entries)
	require.NotNil(t, report)

	assert.Equal(t, "Positive", report.OverallMood)
	assert.Equal(t, "Upward trend", report.Trajectory)
	assert.Equal(t, []string{"i1", "i2", "i3"}, report.KeyInsights)
	assert.Equal(t, []float64{-0.5, 0.2, 0.9}, report.SentimentGraph)

	assert.Equal(t, 0.9, report.BestDay.Score)
	assert.Equal(t, "a wonderful friday", report.BestDay.ContentPreview)
	assert.Equal(t, -0.5, report.WorstDay.Score)

	// Locally computed, never asked of the model.
	assert.Equal(t, model.MoodDistribution{Positive: 1, Neutral: 1, Negative: 1}, report.MoodDistribution)
}

func TestWeeklyReportTieBreakFirstOccurrence(t *testing.T) {
	srv := newChatServer(t, `{"overall_mood": "Balanced", "trajectory": "Stable", "key_insights": ["i"], "recommendations": ["r"]}`)
	r := NewReporter(NewAIClient(srv.URL, "k", "gpt-4o"))

	entries := []model.JournalEntry{
		entryAt(3, 0.5, "first high"),
		entryAt(2, 0.5, "second high"),
		entryAt(1, 0.5, "third high"),
	}
	report := r.WeeklyReport(context.Background(), entries)
	require.NotNil(t, report)
	assert.Equal(t, "first high", report.BestDay.ContentPreview)
	assert.Equal(t, "first high", report.WorstDay.ContentPreview)
}

func TestWeeklyReportFallback(t *testing.T) {
	srv := newFailingServer(t)
	r := NewReporter(NewAIClient(srv.URL, "k", "gpt-4o"))

	entries := []model.JournalEntry{
		entryAt(2, 0.8, "good"),
		entryAt(1, -0.8, "bad"),
	}
	report := r.WeeklyReport(context.Background(), entries)
	require.NotNil(t, report)

	assert.Equal(t, "Balanced", report.OverallMood)
	assert.Equal(t, "Stable", report.Trajectory)
	assert.Equal(t, []string{"You created 2 journal entries this week"}, report.KeyInsights)
	assert.Equal(t, []float64{0.8, -0.8}, report.SentimentGraph)
	assert.Zero(t, report.BestDay.Score)
	assert.Empty(t, report.BestDay.ContentPreview)
	assert.Equal(t, model.MoodDistribution{Positive: 0, Neutral: 2, Negative: 0}, report.MoodDistribution)
}

func TestWeeklyComparison(t *testing.T) {
	r := NewReporter(nil)

	thisWeek := []model.JournalEntry{entryAt(1, 0.6, ""), entryAt(2, 0.2, "")}
	lastWeek := []model.JournalEntry{entryAt(8, 0.2, "")}

	cmp := r.WeeklyComparison(thisWeek, lastWeek)
	assert.Equal(t, 0.4, cmp.ThisWeek.AvgSentiment)
	assert.Equal(t, 2, cmp.ThisWeek.EntryCount)
	assert.Equal(t, 0.2, cmp.LastWeek.AvgSentiment)
	assert.Equal(t, 0.2, cmp.Change)
	assert.Equal(t, 100.0, cmp.ChangePercent)
	assert.Equal(t, "improving", cmp.Trend)
}

func TestWeeklyComparisonEmptyPriorWeek(t *testing.T) {
	r := NewReporter(nil)

	cmp := r.WeeklyComparison([]model.JournalEntry{entryAt(1, 0.5, "")}, nil)
	assert.Equal(t, 0.5, cmp.Change)
	assert.Equal(t, 0.0, cmp.ChangePercent)
	assert.Equal(t, "improving", cmp.Trend)

	// Both windows empty: stable, still no error or division by zero.
	cmp = r.WeeklyComparison(nil, nil)
	assert.Equal(t, 0.0, cmp.ChangePercent)
	assert.Equal(t, "stable", cmp.Trend)
}

func TestWeeklyComparisonDeclining(t *testing.T) {
	r := NewReporter(nil)

	cmp := r.WeeklyComparison(
		[]model.JournalEntry{entryAt(1, -0.4, "")},
		[]model.JournalEntry{entryAt(8, 0.4, "")},
	)
	assert.Equal(t, -0.8, cmp.Change)
	assert.Equal(t, -200.0, cmp.ChangePercent)
	assert.Equal(t, "declining", cmp.Trend)
}
