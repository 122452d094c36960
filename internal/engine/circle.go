package engine

import (
	"fmt"

	"github.com/moodshot/moodshot/internal/model"
)

// MaxInnerCircle bounds the inner-circle allow-list.
const MaxInnerCircle = 5

// ToggleCircleMember removes targetID from the user's inner circle if present,
// otherwise adds it. Removal is always allowed; adding to a full circle
// returns ErrCapacityExceeded and self-membership ErrValidation.
func ToggleCircleMember(u model.User, targetID string) (model.User, error) {
	if targetID == "" {
		return u, fmt.Errorf("%w: target user id is required", model.ErrValidation)
	}
	if targetID == u.UserID {
		return u, fmt.Errorf("%w: cannot add self to inner circle", model.ErrValidation)
	}

	ids := make([]string, 0, len(u.InnerCircleIDs))
	removed := false
	for _, id := range u.InnerCircleIDs {
		if id == targetID {
			removed = true
			continue
		}
		ids = append(ids, id)
	}
	if !removed {
		if len(ids) >= MaxInnerCircle {
			return u, fmt.Errorf("%w: inner circle is limited to %d members", model.ErrCapacityExceeded, MaxInnerCircle)
		}
		ids = append(ids, targetID)
	}
	u.InnerCircleIDs = ids
	return u, nil
}
