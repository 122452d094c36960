// Package engine holds the pure state transitions of the mood-sharing core:
// streaks, reaction rings, mood rooms, resonance matching, inner-circle
// membership, feed visibility and ephemeral chat quotas. Every function takes
// the snapshots it operates on plus a caller-supplied now; nothing here reads
// the wall clock or mutates its inputs.
package engine

import (
	"time"

	"github.com/moodshot/moodshot/internal/model"
)

// LastPostDateLayout is the calendar-date form stored on User.LastPostDate.
const LastPostDateLayout = "2006-01-02"

// PostOutcome is the streak result of a successful post.
type PostOutcome struct {
	StreakCount  int
	LastPostDate string
}

// ComputePostOutcome derives the new streak from the user's posting history
// and the time of the new post. Day difference is taken between UTC calendar
// dates, so a 23:50 post followed by a 00:10 post counts as consecutive days.
// A second post on the same day leaves the streak unchanged, and a negative
// difference (clock skew, backdating) restarts at 1 instead of erroring.
func ComputePostOutcome(u *model.User, postTime time.Time) PostOutcome {
	day := postTime.UTC().Truncate(24 * time.Hour)
	out := PostOutcome{StreakCount: 1, LastPostDate: day.Format(LastPostDateLayout)}

	if u.LastPostDate == "" {
		return out
	}
	last, err := time.ParseInLocation(LastPostDateLayout, u.LastPostDate, time.UTC)
	if err != nil {
		// Unparseable history behaves like no history.
		return out
	}

	diffDays := int(day.Sub(last) / (24 * time.Hour))
	switch {
	case diffDays == 0:
		out.StreakCount = u.StreakCount
	case diffDays == 1:
		out.StreakCount = u.StreakCount + 1
	}
	return out
}
