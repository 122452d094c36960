package model

import "time"

// Sex is the optional sex-category field on a profile.
type Sex string

const (
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
	SexOther       Sex = "other"
	SexUnspecified Sex = "unspecified"
)

// User is the account owning posts, a streak and an inner circle.
type User struct {
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	FullName       *string   `json:"fullName,omitempty"`
	AvatarURL      *string   `json:"avatarUrl,omitempty"`
	DateOfBirth    time.Time `json:"dob"`
	Country        *string   `json:"country,omitempty"`
	Sex            Sex       `json:"sex,omitempty"`
	InnerCircleIDs []string  `json:"innerCircleIds"`
	StreakCount    int       `json:"streakCount"`
	// LastPostDate is a UTC calendar date (YYYY-MM-DD), empty until the first post.
	LastPostDate string    `json:"lastPostDate,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Post is one captured photo tagged with a mood. Immutable except for
// reaction appends, which are owned by the post ledger.
type Post struct {
	PostID     string `json:"postId"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	// PhotoURL is an opaque handle supplied by the capture collaborator.
	PhotoURL     string    `json:"photoUrl"`
	MoodID       string    `json:"moodId"`
	CreationTime time.Time `json:"creationTime"`
	// Reactions keeps recent symbols in arrival order, oldest evicted first.
	Reactions []string `json:"reactions"`
}

// SharedChat is a two-party conversation spawned from a resonance match.
type SharedChat struct {
	ChatID       string        `json:"chatId"`
	Participants [2]string     `json:"participants"`
	MoodID       string        `json:"moodId"`
	Messages     []ChatMessage `json:"messages"`
	CreationTime time.Time     `json:"creationTime"`
	ExpiresAt    time.Time     `json:"expiresAt"`
}

// ChatMessage is one message inside a SharedChat.
type ChatMessage struct {
	MessageID string    `json:"messageId"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ProfileUpdate carries the editable profile fields. Nil pointers leave the
// corresponding field untouched.
type ProfileUpdate struct {
	Username    *string    `json:"username,omitempty"`
	DisplayName *string    `json:"displayName,omitempty"`
	FullName    *string    `json:"fullName,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	DateOfBirth *time.Time `json:"dob,omitempty"`
	Country     *string    `json:"country,omitempty"`
	Sex         *Sex       `json:"sex,omitempty"`
}

// RoomPopulation is the live head-count of one mood room.
type RoomPopulation struct {
	MoodID string `json:"moodId"`
	Count  int    `json:"count"`
}

// MoodStat is a per-mood post count for a single user.
type MoodStat struct {
	MoodID string `json:"moodId"`
	Count  int    `json:"count"`
}
