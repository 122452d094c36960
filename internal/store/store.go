package store

import (
	"context"

	"github.com/moodshot/moodshot/internal/model"
)

// Store is the persistence collaborator consumed by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
// Adapters map driver-level "no rows" onto model.ErrNotFound.
type Store interface {
	Users() Users
	Posts() Posts
	Chats() Chats
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Update persists the full user record; it is the save hook invoked on
	// every profile mutation.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, userID string) error
}

type Posts interface {
	Create(ctx context.Context, p *model.Post) (*model.Post, error)
	Get(ctx context.Context, postID string) (*model.Post, error)
	// List returns the full ledger in ledger order: newest first.
	List(ctx context.Context) ([]*model.Post, error)
	// UpdateReactions replaces the post's reaction ring. The post ledger is
	// the sole mutator of reactions; posts are otherwise immutable.
	UpdateReactions(ctx context.Context, postID string, reactions []string) (*model.Post, error)
}

type Chats interface {
	Create(ctx context.Context, c *model.SharedChat) (*model.SharedChat, error)
	Get(ctx context.Context, chatID string) (*model.SharedChat, error)
	AppendMessage(ctx context.Context, chatID string, msg model.ChatMessage) (*model.SharedChat, error)
	ListByParticipant(ctx context.Context, userID string) ([]*model.SharedChat, error)
}
