package advisory

import (
	"context"
	"time"
)

// dailyPrompts is the built-in prompt rotation used when no model backend is
// configured, and the fallback when one fails.
var dailyPrompts = []string{
	"What does silence feel like right now?",
	"Capturing a texture that matches your heartbeat.",
	"Look up. What's the mood of the sky?",
	"Find a shadow that feels like yours.",
	"What is the color of your current thought?",
	"Capture a glimpse of where you are standing.",
}

const (
	emptyHistoryInsight = "Start your journey to see your weekly resonance."
	fallbackInsight     = "Your emotions are flowing through a unique season."
)

// StaticProvider serves prompts from the built-in rotation, keyed on the UTC
// day so every caller sees the same prompt for a given date.
type StaticProvider struct {
	now func() time.Time
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{now: time.Now}
}

func (p *StaticProvider) DailyPrompt(_ context.Context) (string, error) {
	day := p.now().UTC().YearDay()
	return dailyPrompts[day%len(dailyPrompts)], nil
}

func (p *StaticProvider) MoodInsight(_ context.Context, history []Sample) (string, error) {
	if len(history) == 0 {
		return emptyHistoryInsight, nil
	}
	// Without a model backend, pick by the dominant mood of the window.
	counts := map[string]int{}
	top := history[0].MoodID
	for _, s := range history {
		counts[s.MoodID]++
		if counts[s.MoodID] > counts[top] {
			top = s.MoodID
		}
	}
	if insight, ok := staticInsights[top]; ok {
		return insight, nil
	}
	return fallbackInsight, nil
}

// SuggestMood never suggests; the picker stays fully manual without a model
// backend.
func (p *StaticProvider) SuggestMood(_ context.Context, _ string) (string, error) {
	return "", nil
}

var staticInsights = map[string]string{
	"calm":       "A week resting on quiet ground, steady and unhurried.",
	"melancholy": "The low light of this week carries its own honesty.",
	"radiant":    "Brightness ran through your days; let it settle, not sprint.",
	"fluid":      "Your week moved like water, finding its own level.",
	"heavy":      "The weight you carried this week was real; so was the carrying.",
	"burning":    "Intensity shaped this week; watch what it illuminates.",
	"stormy":     "Turbulence passed through your days without defining them.",
	"serene":     "An even stillness held your week together.",
}
