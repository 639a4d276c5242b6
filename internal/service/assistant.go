package service

import (
	"fmt"
	"strings"

	"sentient-journal/internal/model"
)

// Assistant is the rule-based wellness chat responder. It is a pure
// function of the message and the caller-supplied statistics: no state, no
// model calls.
//
// Rules are evaluated in fixed priority order and the first match wins;
// categories never combine. Matching is substring containment over the
// lower-cased message.
type Assistant struct {
	rules []assistantRule
}

type assistantRule struct {
	keywords []string
	respond  func(total int64, avg float64) (string, []string)
}

func NewAssistant() *Assistant {
	return &Assistant{rules: []assistantRule{
		{keywords: []string{"hello", "hi", "hey", "greetings"}, respond: greetingReply},
		{keywords: []string{"progress", "stats", "how am i doing", "track"}, respond: progressReply},
		{keywords: []string{"how", "start", "begin", "tips", "help", "guide"}, respond: howToReply},
		{keywords: []string{"write about", "topics", "ideas", "prompts"}, respond: topicsReply},
		{keywords: []string{"wellness", "mental health", "self-care", "anxiety", "stress", "depressed"}, respond: wellnessReply},
		{keywords: []string{"consistent", "habit", "daily", "routine", "streak"}, respond: consistencyReply},
		{keywords: []string{"pattern", "insight", "trend", "notice", "learn"}, respond: patternsReply},
		{keywords: []string{"motivate", "encourage", "inspire", "why journal"}, respond: motivationReply},
		{keywords: []string{"week", "report", "summary"}, respond: weeklyReportReply},
		{keywords: []string{"export", "download", "backup", "save"}, respond: exportReply},
	}}
}

// Respond picks the first matching category for the message, interpolating
// the user's total entry count and average recent sentiment.
func (a *Assistant) Respond(message string, totalEntries int64, avgSentiment float64) (string, []string) {
	message = strings.ToLower(strings.TrimSpace(message))
	for _, rule := range a.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return rule.respond(totalEntries, avgSentiment)
			}
		}
	}
	return defaultReply(totalEntries, avgSentiment)
}

func greetingReply(total int64, avg float64) (string, []string) {
	if total == 0 {
		return "👋 Hello! I'm your Wellness Assistant. I'm here to help you start your mental wellness journey through journaling. " +
				"Would you like some tips on how to begin?",
			[]string{"How do I start journaling?", "What should I write about?", "Show me journaling tips"}
	}
	mood := "balanced"
	switch model.SentimentBucket(avg) {
	case "positive":
		mood = "positive"
	case "negative":
		mood = "challenging"
	}
	return fmt.Sprintf("👋 Welcome back! You've written %d journal entries so far. "+
			"Your recent mood has been %s. How can I help you today?", total, mood),
		[]string{"Show my progress", "Give me journaling tips", "Help me reflect on patterns"}
}

func progressReply(total int64, avg float64) (string, []string) {
	if total == 0 {
		return "You haven't started journaling yet! Let's begin your wellness journey. " +
				"Regular journaling helps you track emotions, identify patterns, and improve mental health.",
			[]string{"Start my first entry", "Why should I journal?", "What are the benefits?"}
	}
	emoji := "😐"
	switch model.SentimentBucket(avg) {
	case "positive":
		emoji = "😊"
	case "negative":
		emoji = "😔"
	}
	encouragement := "Remember, tough times are temporary. Keep journaling to track your journey."
	if avg > 0 {
		encouragement = "Keep up the great work!"
	}
	return fmt.Sprintf("%s You've written %d journal entries! "+
			"Your average emotional state is %.2f. %s Consistency is key to mental wellness!",
			emoji, total, avg, encouragement),
		[]string{"Show weekly report", "View emotional trends", "Compare this week vs last week"}
}

func howToReply(total int64, avg float64) (string, []string) {
	return "📝 Here are some powerful journaling tips:\n\n" +
			"1. **Be Honest**: Write freely without judgment\n" +
			"2. **Be Specific**: Include details about your day and feelings\n" +
			"3. **Be Consistent**: Try to journal daily, even if brief\n" +
			"4. **Reflect**: Ask yourself 'What did I learn today?'\n" +
			"5. **Express Gratitude**: Note 3 things you're grateful for\n\n" +
			"Ready to write your next entry?",
		[]string{"Start writing now", "Tell me more about consistency", "What should I write about?"}
}

func topicsReply(total int64, avg float64) (string, []string) {
	return "💡 Great journaling prompts:\n\n" +
			"• How are you feeling right now and why?\n" +
			"• What challenged you today and how did you handle it?\n" +
			"• What made you smile or feel grateful?\n" +
			"• What patterns do you notice in your emotions?\n" +
			"• What goals do you want to work towards?\n" +
			"• Who or what inspired you recently?\n\n" +
			"Pick one and start writing!",
		[]string{"I'll start writing", "Give me more prompts", "Show my recent entries"}
}

func wellnessReply(total int64, avg float64) (string, []string) {
	return "🧠 Mental wellness is a journey, not a destination. Here's what can help:\n\n" +
			"• **Journal regularly** to process emotions\n" +
			"• **Practice mindfulness** and deep breathing\n" +
			"• **Stay connected** with supportive people\n" +
			"• **Move your body** - exercise helps mood\n" +
			"• **Sleep well** - rest is crucial\n" +
			"• **Seek help** when needed - it's a sign of strength\n\n" +
			"Remember: You're not alone in this journey. 💚",
		[]string{"Track my mood patterns", "I want to journal now", "Show my progress"}
}

func consistencyReply(total int64, avg float64) (string, []string) {
	return fmt.Sprintf("🔥 Building a journaling habit:\n\n"+
			"• **Set a specific time** - morning or before bed works great\n"+
			"• **Start small** - even 5 minutes counts\n"+
			"• **Use reminders** - set a daily alarm\n"+
			"• **Track your streak** - celebrate small wins\n"+
			"• **Don't break the chain** - write something every day\n\n"+
			"You've written %d entries so far. Keep going!", total),
		[]string{"Write my entry now", "Show my streak", "Give me motivation"}
}

func patternsReply(total int64, avg float64) (string, []string) {
	if total < 5 {
		return "To identify meaningful patterns, try journaling for at least a week. " +
				"The more you write, the clearer your emotional patterns become!",
			[]string{"Start writing more", "What should I track?", "Show journaling tips"}
	}
	observation := "Your emotions are balanced."
	switch model.SentimentBucket(avg) {
	case "positive":
		observation = "You tend to be optimistic!"
	case "negative":
		observation = "You face challenges with resilience."
	}
	return fmt.Sprintf("📊 Based on your %d entries, here's what I notice:\n\n"+
			"• Your average mood is %.2f\n"+
			"• %s\n"+
			"• Check your Emotional Trends tab for visual insights\n"+
			"• Review your Weekly Report for detailed analysis\n\n"+
			"Keep journaling to discover more patterns!", total, avg, observation),
		[]string{"View emotional trends", "Generate weekly report", "Continue journaling"}
}

func motivationReply(total int64, avg float64) (string, []string) {
	return "✨ Why journaling is powerful:\n\n" +
			"• **Clarity**: Untangle complex emotions\n" +
			"• **Growth**: Track your personal evolution\n" +
			"• **Healing**: Process difficult experiences\n" +
			"• **Gratitude**: Focus on positive moments\n" +
			"• **Self-awareness**: Understand yourself better\n" +
			"• **Stress relief**: Release pent-up feelings\n\n" +
			"You're investing in yourself. That's beautiful! 💪",
		[]string{"I'm ready to write", "Show my progress", "Give me writing prompts"}
}

func weeklyReportReply(total int64, avg float64) (string, []string) {
	return "📊 To see your weekly insights:\n\n" +
			"1. Click on the **Weekly Report** tab\n" +
			"2. Press **Generate Weekly Insights**\n" +
			"3. Review your mood trends, best/worst days, and recommendations\n\n" +
			"Your weekly report helps you understand your emotional journey!",
		[]string{"Take me to reports", "Show my trends", "I'll write more entries"}
}

func exportReply(total int64, avg float64) (string, []string) {
	return "💾 To export your journal:\n\n" +
			"1. Go to the **Export Data** tab\n" +
			"2. Choose **JSON** (for data) or **Text** (for reading)\n" +
			"3. Your entries will download automatically\n\n" +
			"It's always good to backup your thoughts!",
		[]string{"Show export options", "Continue journaling", "View my entries"}
}

func defaultReply(total int64, avg float64) (string, []string) {
	return "I'm here to help you with:\n\n" +
			"• **Journaling tips** and writing prompts\n" +
			"• **Progress tracking** and emotional insights\n" +
			"• **Mental wellness** guidance and support\n" +
			"• **Building habits** and staying consistent\n\n" +
			"What would you like to explore?",
		[]string{"Give me journaling tips", "Show my progress", "Help me stay consistent", "What should I write about?"}
}
