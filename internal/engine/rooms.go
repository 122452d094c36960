package engine

import (
	"time"

	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/moods"
)

const (
	// RoomWindow is how far back a post stays visible inside a mood room.
	RoomWindow = 24 * time.Hour

	// ResonanceWindow is the maximum gap between two same-mood posts for
	// their authors to count as a resonance match.
	ResonanceWindow = 2 * time.Hour
)

// inWindow reports whether p was created within the trailing room window.
func inWindow(p model.Post, now time.Time) bool {
	return now.Sub(p.CreationTime) < RoomWindow
}

// RoomPopulations counts recent posts per mood. Results follow catalog order
// with zero-count moods dropped.
func RoomPopulations(posts []model.Post, now time.Time) []model.RoomPopulation {
	counts := make(map[string]int)
	for _, p := range posts {
		if inWindow(p, now) {
			counts[p.MoodID]++
		}
	}
	var out []model.RoomPopulation
	for _, m := range moods.Catalog {
		if n := counts[m.ID]; n > 0 {
			out = append(out, model.RoomPopulation{MoodID: m.ID, Count: n})
		}
	}
	return out
}

// OpenRoom returns the posts of one mood room: same mood, within the trailing
// window, in the ledger order of the input.
func OpenRoom(posts []model.Post, moodID string, now time.Time) []model.Post {
	var out []model.Post
	for _, p := range posts {
		if p.MoodID == moodID && inWindow(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// FindResonanceMatch looks for another user's post within ResonanceWindow of
// the current user's own post in roomPosts. Without an own post there is no
// match. With several candidates the first in ledger order wins. The result
// is advisory; nothing is mutated.
func FindResonanceMatch(roomPosts []model.Post, currentUserID string) *model.Post {
	var own *model.Post
	for i := range roomPosts {
		if roomPosts[i].AuthorID == currentUserID {
			own = &roomPosts[i]
			break
		}
	}
	if own == nil {
		return nil
	}
	for i := range roomPosts {
		p := &roomPosts[i]
		if p.AuthorID == currentUserID {
			continue
		}
		gap := p.CreationTime.Sub(own.CreationTime)
		if gap < 0 {
			gap = -gap
		}
		if gap < ResonanceWindow {
			return p
		}
	}
	return nil
}
