package engine

import (
	"fmt"

	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/moods"
)

// MaxReactions bounds the reaction ring kept on every post.
const MaxReactions = 10

// ApplyReaction appends symbol to the post's reaction ring and returns the
// updated post. The ring keeps the most recent MaxReactions entries, evicting
// from the front; duplicates and repeats are all retained up to the cap.
// Unknown symbols are rejected with ErrValidation.
func ApplyReaction(p model.Post, symbol string) (model.Post, error) {
	if !moods.IsKnownReaction(symbol) {
		return p, fmt.Errorf("%w: unknown reaction symbol %q", model.ErrValidation, symbol)
	}
	ring := make([]string, 0, len(p.Reactions)+1)
	ring = append(ring, p.Reactions...)
	ring = append(ring, symbol)
	if len(ring) > MaxReactions {
		ring = ring[len(ring)-MaxReactions:]
	}
	p.Reactions = ring
	return p, nil
}
