package services

import (
	"context"
	"fmt"

	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/engine"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/moods"
	"github.com/moodshot/moodshot/internal/store"
)

// RoomService derives mood rooms and resonance matches from the post ledger.
type RoomService struct {
	store store.Store
	clock clock.Clock
}

func NewRoomService(s store.Store, c clock.Clock) *RoomService {
	return &RoomService{store: s, clock: c}
}

// Populations returns the live head-count of every non-empty mood room.
func (s *RoomService) Populations(ctx context.Context) ([]model.RoomPopulation, error) {
	all, err := s.store.Posts().List(ctx)
	if err != nil {
		return nil, err
	}
	return engine.RoomPopulations(deref(all), s.clock.Now()), nil
}

// OpenRoom returns the posts currently inside moodID's room, ledger order.
func (s *RoomService) OpenRoom(ctx context.Context, moodID string) ([]*model.Post, error) {
	if !moods.IsValid(moodID) {
		return nil, fmt.Errorf("%w: unknown mood %q", model.ErrValidation, moodID)
	}
	all, err := s.store.Posts().List(ctx)
	if err != nil {
		return nil, err
	}
	return ref(engine.OpenRoom(deref(all), moodID, s.clock.Now())), nil
}

// FindResonance returns userID's resonance match inside moodID's room, or nil
// when no post pairs up.
func (s *RoomService) FindResonance(ctx context.Context, moodID, userID string) (*model.Post, error) {
	if !moods.IsValid(moodID) {
		return nil, fmt.Errorf("%w: unknown mood %q", model.ErrValidation, moodID)
	}
	if _, err := s.store.Users().Get(ctx, userID); err != nil {
		return nil, err
	}
	all, err := s.store.Posts().List(ctx)
	if err != nil {
		return nil, err
	}
	room := engine.OpenRoom(deref(all), moodID, s.clock.Now())
	return engine.FindResonanceMatch(room, userID), nil
}
