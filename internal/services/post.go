package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/engine"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/moods"
	"github.com/moodshot/moodshot/internal/store"
)

// PostService handles the post ledger, streak updates and reactions.
type PostService struct {
	store store.Store
	clock clock.Clock
}

func NewPostService(s store.Store, c clock.Clock) *PostService {
	return &PostService{store: s, clock: c}
}

// CreatePost records a photo tagged with a mood and applies the author's
// streak outcome atomically with the post.
func (s *PostService) CreatePost(ctx context.Context, authorID, photoURL, moodID string) (*model.Post, error) {
	if photoURL == "" {
		return nil, fmt.Errorf("%w: photoUrl is required", model.ErrValidation)
	}
	if !moods.IsValid(moodID) {
		return nil, fmt.Errorf("%w: unknown mood %q", model.ErrValidation, moodID)
	}
	author, err := s.store.Users().Get(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	post := &model.Post{
		PostID:       uuid.New().String(),
		AuthorID:     author.UserID,
		AuthorName:   author.DisplayName,
		PhotoURL:     photoURL,
		MoodID:       moodID,
		CreationTime: now,
		Reactions:    []string{},
	}

	outcome := engine.ComputePostOutcome(author, now)
	author.StreakCount = outcome.StreakCount
	author.LastPostDate = outcome.LastPostDate
	if _, err := s.store.Users().Update(ctx, author); err != nil {
		return nil, err
	}
	return s.store.Posts().Create(ctx, post)
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	return s.store.Posts().Get(ctx, postID)
}

// ListPosts returns the full ledger, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return s.store.Posts().List(ctx)
}

// React appends one reaction symbol to a post's ring.
func (s *PostService) React(ctx context.Context, postID, symbol string) (*model.Post, error) {
	p, err := s.store.Posts().Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	next, err := engine.ApplyReaction(*p, symbol)
	if err != nil {
		return nil, err
	}
	return s.store.Posts().UpdateReactions(ctx, postID, next.Reactions)
}
