package model

import "time"

// SentimentThreshold separates the three mood buckets: scores above it are
// positive, below its negation negative, everything between neutral.
const SentimentThreshold = 0.3

func SentimentBucket(score float64) string {
	switch {
	case score > SentimentThreshold:
		return "positive"
	case score < -SentimentThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type EntryRequest struct {
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply            string   `json:"reply"`
	SuggestedPrompts []string `json:"suggested_prompts"`
}

// Analysis is the per-entry sentiment result. It is produced fresh on every
// create and update and embedded into the stored entry, never persisted on
// its own.
type Analysis struct {
	SentimentScore float64  `json:"sentiment_score"`
	Emotions       []string `json:"emotions"`
	KeyThemes      []string `json:"key_themes"`
	BriefInsight   string   `json:"brief_insight"`
}

// SearchFilter holds the ANDed filters for entry search. Zero values mean
// "not set".
type SearchFilter struct {
	Query     string
	StartDate time.Time
	EndDate   time.Time
	Sentiment string // "positive", "negative" or "neutral"
}

type DayPreview struct {
	Date           string  `json:"date"`
	Score          float64 `json:"score"`
	ContentPreview string  `json:"content_preview"`
}

type MoodDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// WeeklyReport is computed on demand and never persisted.
type WeeklyReport struct {
	OverallMood      string           `json:"overall_mood"`
	Trajectory       string           `json:"trajectory"`
	KeyInsights      []string         `json:"key_insights"`
	Recommendations  []string         `json:"recommendations"`
	SentimentGraph   []float64        `json:"sentiment_graph"`
	BestDay          DayPreview       `json:"best_day"`
	WorstDay         DayPreview       `json:"worst_day"`
	MoodDistribution MoodDistribution `json:"mood_distribution"`
}

type WeekStats struct {
	AvgSentiment float64 `json:"avg_sentiment"`
	EntryCount   int     `json:"entry_count"`
}

type WeeklyComparison struct {
	ThisWeek      WeekStats `json:"this_week"`
	LastWeek      WeekStats `json:"last_week"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Trend         string    `json:"trend"`
}
