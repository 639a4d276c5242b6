package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"sentient-journal/internal/logger"
	"sentient-journal/internal/model"
)

const reportSystem = "You are a compassionate mental wellness AI that helps users understand their emotional patterns. Respond only with valid JSON."

// Reporter aggregates entries into weekly summaries and comparisons.
type Reporter struct {
	ai *AIClient
}

func NewReporter(ai *AIClient) *Reporter { return &Reporter{ai: ai} }

type entrySummary struct {
	Date      string   `json:"date"`
	Sentiment float64  `json:"sentiment"`
	Emotions  []string `json:"emotions"`
	Themes    []string `json:"themes"`
	Preview   string   `json:"preview"`
}

// WeeklyReport builds the report for the given period. Entries are expected
// in chronological order. Returns nil for an empty period; model failures
// degrade to a minimal local report, never an error.
func (r *Reporter) WeeklyReport(ctx context.Context, entries []model.JournalEntry) *model.WeeklyReport {
	if len(entries) == 0 {
		return nil
	}

	sentiments := make([]float64, len(entries))
	for i, e := range entries {
		sentiments[i] = e.SentimentScore
	}
	avg := mean(sentiments)

	// Ties keep the first occurrence in input order.
	best, worst := entries[0], entries[0]
	for _, e := range entries[1:] {
		if e.SentimentScore > best.SentimentScore {
			best = e
		}
		if e.SentimentScore < worst.SentimentScore {
			worst = e
		}
	}

	summaries := make([]entrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = entrySummary{
			Date:      e.CreatedAt.Format("2006-01-02"),
			Sentiment: e.SentimentScore,
			Emotions:  e.Emotions,
			Themes:    e.KeyThemes,
			Preview:   truncate(e.Content, 200, false),
		}
	}
	summaryJSON, _ := json.MarshalIndent(summaries, "", "  ")

	prompt := fmt.Sprintf(`As an empathetic mental wellness AI, analyze this week's journal entries and provide insights.

Week Summary:
- Total entries: %d
- Average sentiment: %.2f
- Best day: %s (score: %.2f)
- Challenging day: %s (score: %.2f)

Entries:
%s

Provide a comprehensive weekly analysis with:
1. Overall mood assessment (one word: Positive/Balanced/Challenging)
2. Emotional trajectory (brief phrase)
3. 3-5 key insights about patterns, triggers, or correlations between activities and mood
4. 3 personalized recommendations for next week

Respond ONLY with valid JSON:
{
    "overall_mood": "Positive",
    "trajectory": "Upward trend",
    "key_insights": ["insight1", "insight2", "insight3"],
    "recommendations": ["rec1", "rec2", "rec3"]
}`,
		len(entries), avg,
		best.CreatedAt.Format("2006-01-02"), best.SentimentScore,
		worst.CreatedAt.Format("2006-01-02"), worst.SentimentScore,
		summaryJSON)

	reply, err := r.ai.Chat(ctx, reportSystem, prompt)
	if err != nil {
		logger.Warn("report.fallback", "err", err)
		return fallbackReport(entries, sentiments)
	}

	var parsed struct {
		OverallMood     string   `json:"overall_mood"`
		Trajectory      string   `json:"trajectory"`
		KeyInsights     []string `json:"key_insights"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(stripFences(reply)), &parsed); err != nil {
		logger.Warn("report.fallback", "err", err)
		return fallbackReport(entries, sentiments)
	}

	return &model.WeeklyReport{
		OverallMood:     defaultString(parsed.OverallMood, "Balanced"),
		Trajectory:      defaultString(parsed.Trajectory, "Stable"),
		KeyInsights:     defaultList(parsed.KeyInsights, fmt.Sprintf("You created %d journal entries this week", len(entries))),
		Recommendations: defaultList(parsed.Recommendations, "Continue your daily journaling practice"),
		SentimentGraph:  sentiments,
		BestDay: model.DayPreview{
			Date:           best.CreatedAt.Format("2006-01-02"),
			Score:          best.SentimentScore,
			ContentPreview: truncate(best.Content, 100, true),
		},
		WorstDay: model.DayPreview{
			Date:           worst.CreatedAt.Format("2006-01-02"),
			Score:          worst.SentimentScore,
			ContentPreview: truncate(worst.Content, 100, true),
		},
		MoodDistribution: distribution(sentiments),
	}
}

// WeeklyComparison compares two 7-day windows. Empty windows contribute a
// zero mean rather than an error, and an empty prior week never divides by
// zero.
func (r *Reporter) WeeklyComparison(thisWeek, lastWeek []model.JournalEntry) model.WeeklyComparison {
	thisAvg := entryMean(thisWeek)
	lastAvg := entryMean(lastWeek)

	change := thisAvg - lastAvg
	changePercent := 0.0
	if lastAvg != 0 {
		changePercent = change / math.Abs(lastAvg) * 100
	}

	trend := "stable"
	if change > 0 {
		trend = "improving"
	} else if change < 0 {
		trend = "declining"
	}

	return model.WeeklyComparison{
		ThisWeek:      model.WeekStats{AvgSentiment: round2(thisAvg), EntryCount: len(thisWeek)},
		LastWeek:      model.WeekStats{AvgSentiment: round2(lastAvg), EntryCount: len(lastWeek)},
		Change:        round2(change),
		ChangePercent: round1(changePercent),
		Trend:         trend,
	}
}

func fallbackReport(entries []model.JournalEntry, sentiments []float64) *model.WeeklyReport {
	first := entries[0].CreatedAt.Format("2006-01-02")
	return &model.WeeklyReport{
		OverallMood:     "Balanced",
		Trajectory:      "Stable",
		KeyInsights:     []string{fmt.Sprintf("You created %d journal entries this week", len(entries))},
		Recommendations: []string{"Continue your daily journaling practice"},
		SentimentGraph:  sentiments,
		BestDay:         model.DayPreview{Date: first, Score: 0, ContentPreview: ""},
		WorstDay:        model.DayPreview{Date: first, Score: 0, ContentPreview: ""},
		MoodDistribution: model.MoodDistribution{
			Positive: 0,
			Neutral:  len(entries),
			Negative: 0,
		},
	}
}

func distribution(sentiments []float64) model.MoodDistribution {
	var d model.MoodDistribution
	for _, s := range sentiments {
		switch model.SentimentBucket(s) {
		case "positive":
			d.Positive++
		case "negative":
			d.Negative++
		default:
			d.Neutral++
		}
	}
	return d
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func entryMean(entries []model.JournalEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.SentimentScore
	}
	return sum / float64(len(entries))
}

func defaultList(list []string, fallback string) []string {
	if len(list) == 0 {
		return []string{fallback}
	}
	return list
}

func truncate(s string, n int, ellipsis bool) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if ellipsis {
		return string(runes[:n]) + "..."
	}
	return string(runes[:n])
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
