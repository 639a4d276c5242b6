package service

import (
	"context"
	"encoding/json"
	"fmt"

	"sentient-journal/internal/logger"
	"sentient-journal/internal/model"
)

const analyzerSystem = "You are an empathetic mental wellness AI assistant specializing in emotional analysis. Respond only with valid JSON."

const analyzerPrompt = `Analyze the following journal entry for emotional content and themes.
Provide a detailed psychological analysis with:
1. Sentiment score (-1.0 to 1.0, where -1 is very negative, 0 is neutral, 1 is very positive)
2. Up to 3 primary emotions detected (e.g., anxious, grateful, stressed, hopeful, etc.)
3. Up to 2 key themes (e.g., work, relationships, health, personal growth, etc.)
4. A brief empathetic insight (1-2 sentences)

Journal Entry:
%q

Respond ONLY with valid JSON in this exact format:
{
    "sentiment_score": 0.5,
    "emotions": ["emotion1", "emotion2", "emotion3"],
    "key_themes": ["theme1", "theme2"],
    "brief_insight": "Your insight here"
}`

// Analyzer derives per-entry sentiment metadata from the language model.
type Analyzer struct {
	ai *AIClient
}

func NewAnalyzer(ai *AIClient) *Analyzer { return &Analyzer{ai: ai} }

// Analyze never fails: any upstream problem yields the fixed degraded
// result, so entry writes are never blocked on the model.
func (a *Analyzer) Analyze(ctx context.Context, text string) model.Analysis {
	reply, err := a.ai.Chat(ctx, analyzerSystem, fmt.Sprintf(analyzerPrompt, text))
	if err != nil {
		logger.Warn("analyze.fallback", "err", err)
		return fallbackAnalysis()
	}

	var parsed struct {
		SentimentScore float64  `json:"sentiment_score"`
		Emotions       []string `json:"emotions"`
		KeyThemes      []string `json:"key_themes"`
		BriefInsight   string   `json:"brief_insight"`
	}
	if err := json.Unmarshal([]byte(stripFences(reply)), &parsed); err != nil {
		logger.Warn("analyze.fallback", "err", err)
		return fallbackAnalysis()
	}

	return model.Analysis{
		SentimentScore: clamp(parsed.SentimentScore, -1, 1),
		Emotions:       coerceLabels(parsed.Emotions, 3, "neutral"),
		KeyThemes:      coerceLabels(parsed.KeyThemes, 2, "self-reflection"),
		BriefInsight:   defaultString(parsed.BriefInsight, "Your entry has been analyzed."),
	}
}

func fallbackAnalysis() model.Analysis {
	return model.Analysis{
		SentimentScore: 0.0,
		Emotions:       []string{"reflective"},
		KeyThemes:      []string{"self-reflection"},
		BriefInsight:   "Your entry has been recorded. AI analysis temporarily unavailable.",
	}
}

func coerceLabels(labels []string, max int, fallback string) []string {
	if len(labels) == 0 {
		return []string{fallback}
	}
	if len(labels) > max {
		labels = labels[:max]
	}
	return labels
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
