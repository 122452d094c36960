package engine

import (
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/moods"
)

// VisiblePosts filters the ledger for the user's main feed. An empty inner
// circle shows the global collective; a non-empty one shows only the user's
// own posts and circle members' posts. This is a binary mode switch, not a
// blend.
func VisiblePosts(posts []model.Post, u model.User) []model.Post {
	if len(u.InnerCircleIDs) == 0 {
		return posts
	}
	circle := make(map[string]struct{}, len(u.InnerCircleIDs))
	for _, id := range u.InnerCircleIDs {
		circle[id] = struct{}{}
	}
	var out []model.Post
	for _, p := range posts {
		if p.AuthorID == u.UserID {
			out = append(out, p)
			continue
		}
		if _, ok := circle[p.AuthorID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// MoodStats counts one user's posts per mood, catalog order, zero counts
// dropped. Feeds the profile mood chart.
func MoodStats(posts []model.Post, userID string) []model.MoodStat {
	counts := make(map[string]int)
	for _, p := range posts {
		if p.AuthorID == userID {
			counts[p.MoodID]++
		}
	}
	var out []model.MoodStat
	for _, m := range moods.Catalog {
		if n := counts[m.ID]; n > 0 {
			out = append(out, model.MoodStat{MoodID: m.ID, Count: n})
		}
	}
	return out
}
