// Package advisory produces the daily capture prompt and the weekly mood
// insight. Providers are side collaborators; the social state never depends
// on their availability.
package advisory

import "context"

// Sample is one mood observation handed to the insight generator.
type Sample struct {
	MoodID string `json:"mood"`
	Date   string `json:"date"`
}

// Provider generates advisory text.
type Provider interface {
	// DailyPrompt returns a short capture directive for today.
	DailyPrompt(ctx context.Context) (string, error)
	// MoodInsight returns a one-sentence reflection over recent mood history.
	MoodInsight(ctx context.Context, history []Sample) (string, error)
	// SuggestMood returns a catalog mood id for a photo handle, or "" when
	// the provider has no suggestion. The handle is opaque.
	SuggestMood(ctx context.Context, photoHandle string) (string, error)
}
