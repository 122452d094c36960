package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/engine"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/store"
)

// MinRegistrationAge is the minimum whole age in years at registration.
const MinRegistrationAge = 13

// UserService handles accounts, profiles and inner circles.
type UserService struct {
	store store.Store
	clock clock.Clock
}

func NewUserService(s store.Store, c clock.Clock) *UserService {
	return &UserService{store: s, clock: c}
}

// Register creates a new account. The caller supplies username, display name
// and date of birth; ids and timestamps are assigned here.
func (s *UserService) Register(ctx context.Context, u *model.User) (*model.User, error) {
	now := s.clock.Now()
	if !eligible(u.DateOfBirth, now) {
		return nil, fmt.Errorf("%w: must be at least %d years old", model.ErrEligibility, MinRegistrationAge)
	}
	out := *u
	out.UserID = uuid.New().String()
	out.CreationTime = now
	out.StreakCount = 0
	out.LastPostDate = ""
	out.InnerCircleIDs = []string{}
	if out.Sex == "" {
		out.Sex = model.SexUnspecified
	}
	return s.store.Users().Create(ctx, &out)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

// GetUserByUsername backs the login flow.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.store.Users().GetByUsername(ctx, username)
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.store.Users().Delete(ctx, userID)
}

// UpdateProfile applies the non-nil fields of upd. A new date of birth is
// re-checked against the eligibility floor.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.User, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.DateOfBirth != nil && !eligible(*upd.DateOfBirth, s.clock.Now()) {
		return nil, fmt.Errorf("%w: must be at least %d years old", model.ErrEligibility, MinRegistrationAge)
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.FullName != nil {
		u.FullName = upd.FullName
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = upd.AvatarURL
	}
	if upd.DateOfBirth != nil {
		u.DateOfBirth = *upd.DateOfBirth
	}
	if upd.Country != nil {
		u.Country = upd.Country
	}
	if upd.Sex != nil {
		u.Sex = *upd.Sex
	}
	return s.store.Users().Update(ctx, u)
}

// ToggleCircle adds targetID to userID's inner circle, or removes it when
// already present. The target must exist.
func (s *UserService) ToggleCircle(ctx context.Context, userID, targetID string) (*model.User, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Users().Get(ctx, targetID); err != nil {
		return nil, err
	}
	next, err := engine.ToggleCircleMember(*u, targetID)
	if err != nil {
		return nil, err
	}
	return s.store.Users().Update(ctx, &next)
}

// Feed returns the posts visible to userID in ledger order, filtered down to
// the inner circle when one is set.
func (s *UserService) Feed(ctx context.Context, userID string) ([]*model.Post, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.store.Posts().List(ctx)
	if err != nil {
		return nil, err
	}
	visible := engine.VisiblePosts(deref(all), *u)
	return ref(visible), nil
}

// MoodStats aggregates userID's post counts per mood.
func (s *UserService) MoodStats(ctx context.Context, userID string) ([]model.MoodStat, error) {
	if _, err := s.store.Users().Get(ctx, userID); err != nil {
		return nil, err
	}
	all, err := s.store.Posts().List(ctx)
	if err != nil {
		return nil, err
	}
	return engine.MoodStats(deref(all), userID), nil
}

func eligible(dob, now time.Time) bool {
	return !dob.AddDate(MinRegistrationAge, 0, 0).After(now)
}

func deref(ps []*model.Post) []model.Post {
	out := make([]model.Post, 0, len(ps))
	for _, p := range ps {
		out = append(out, *p)
	}
	return out
}

func ref(ps []model.Post) []*model.Post {
	out := make([]*model.Post, 0, len(ps))
	for i := range ps {
		p := ps[i]
		out = append(out, &p)
	}
	return out
}
