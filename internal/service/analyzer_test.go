package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newChatServer serves an OpenAI-style chat completion whose message content
// is the given string.
func newChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFailingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := newChatServer(t, `{"sentiment_score": 0.6, "emotions": ["grateful", "hopeful"], "key_themes": ["work"], "brief_insight": "A good day."}`)
	a := NewAnalyzer(NewAIClient(srv.URL, "test-key", "gpt-4o"))

	got := a.Analyze(context.Background(), "today went well")
	assert.Equal(t, 0.6, got.SentimentScore)
	assert.Equal(t, []string{"grateful", "hopeful"}, got.Emotions)
	assert.Equal(t, []string{"work"}, got.KeyThemes)
	assert.Equal(t, "A good day.", got.BriefInsight)
}

func TestAnalyzeCoercion(t *testing.T) {
	// Out-of-range score, too many labels, missing themes and insight.
	srv := newChatServer(t, `{"sentiment_score": 3.5, "emotions": ["a", "b", "c", "d", "e"], "key_themes": []}`)
	a := NewAnalyzer(NewAIClient(srv.URL, "test-key", "gpt-4o"))

	got := a.Analyze(context.Background(), "text")
	assert.Equal(t, 1.0, got.SentimentScore)
	assert.Equal(t, []string{"a", "b", "c"}, got.Emotions)
	assert.Equal(t, []string{"self-reflection"}, got.KeyThemes)
	assert.Equal(t, "Your entry has been analyzed.", got.BriefInsight)
}

func TestAnalyzeFencedReply(t *testing.T) {
	srv := newChatServer(t, "```json\n{\"sentiment_score\": -0.4, \"emotions\": [\"tired\"], \"key_themes\": [\"health\"], \"brief_insight\": \"Rest up.\"}\n```")
	a := NewAnalyzer(NewAIClient(srv.URL, "test-key", "gpt-4o"))

	got := a.Analyze(context.Background(), "text")
	assert.Equal(t, -0.4, got.SentimentScore)
	assert.Equal(t, []string{"tired"}, got.Emotions)
}

func TestAnalyzeFallbackDeterministic(t *testing.T) {
	srv := newFailingServer(t)
	a := NewAnalyzer(NewAIClient(srv.URL, "test-key", "gpt-4o"))

	for i := 0; i < 3; i++ {
		got := a.Analyze(context.Background(), "anything")
		assert.Equal(t, 0.0, got.SentimentScore)
		assert.Equal(t, []string{"reflective"}, got.Emotions)
		assert.Equal(t, []string{"self-reflection"}, got.KeyThemes)
		assert.Equal(t, "Your entry has been recorded. AI analysis temporarily unavailable.", got.BriefInsight)
	}
}

func TestAnalyzeMalformedReplyFallsBack(t *testing.T) {
	srv := newChatServer(t, "I cannot analyze this entry, sorry.")
	a := NewAnalyzer(NewAIClient(srv.URL, "test-key", "gpt-4o"))

	got := a.Analyze(context.Background(), "anything")
	assert.Equal(t, []string{"reflective"}, got.Emotions)
}
