package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id        TEXT PRIMARY KEY,
    username       TEXT NOT NULL UNIQUE,
    display_name   TEXT NOT NULL,
    full_name      TEXT,
    avatar_url     TEXT,
    dob_ms         BIGINT NOT NULL,
    country        TEXT,
    sex            TEXT NOT NULL DEFAULT 'unspecified',
    inner_circle   JSONB NOT NULL DEFAULT '[]',
    streak_count   INT NOT NULL DEFAULT 0,
    last_post_date TEXT NOT NULL DEFAULT '',
    creation_ms    BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
    seq         BIGSERIAL PRIMARY KEY,
    post_id     TEXT NOT NULL UNIQUE,
    author_id   TEXT NOT NULL,
    author_name TEXT NOT NULL,
    photo_url   TEXT NOT NULL,
    mood_id     TEXT NOT NULL,
    creation_ms BIGINT NOT NULL,
    reactions   JSONB NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
CREATE INDEX IF NOT EXISTS idx_posts_mood ON posts(mood_id, creation_ms);

CREATE TABLE IF NOT EXISTS chats (
    chat_id       TEXT PRIMARY KEY,
    participant_a TEXT NOT NULL,
    participant_b TEXT NOT NULL,
    mood_id       TEXT NOT NULL,
    creation_ms   BIGINT NOT NULL,
    expires_ms    BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_messages (
    seq        BIGSERIAL PRIMARY KEY,
    message_id TEXT NOT NULL UNIQUE,
    chat_id    TEXT NOT NULL REFERENCES chats(chat_id),
    sender_id  TEXT NOT NULL,
    body       TEXT NOT NULL,
    ts_ms      BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_chat ON chat_messages(chat_id, seq);
`

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens dsn and ensures the schema.
func New(dsn string) (*PgStore, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the store onto an existing connection.
func NewWithDB(db *sql.DB) (*PgStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &PgStore{db: db}, nil
}

// PgStore implements store.Store on PostgreSQL.
type PgStore struct{ db *sql.DB }

// DB exposes the underlying connection.
func (s *PgStore) DB() *sql.DB { return s.db }

func (s *PgStore) Users() store.Users { return &users{db: s.db} }
func (s *PgStore) Posts() store.Posts { return &posts{db: s.db} }
func (s *PgStore) Chats() store.Chats { return &chats{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *PgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- helpers ---

func msOf(t time.Time) int64    { return t.UTC().UnixMilli() }
func timeOf(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func jsonList(v []string) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func listJSON(s string) []string {
	var out []string
	_ = json.Unmarshal([]byte(s), &out)
	if out == nil {
		out = []string{}
	}
	return out
}

func optStr(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func strOpt(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func isUniqueViolation(err error) bool {
	// pgx surfaces SQLSTATE 23505 for unique violations.
	return err != nil && strings.Contains(err.Error(), "23505")
}

// --- Users ---

type users struct{ db *sql.DB }

const userCols = `user_id, username, display_name, full_name, avatar_url, dob_ms, country, sex, inner_circle, streak_count, last_post_date, creation_ms`

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.InnerCircleIDs == nil {
		out.InnerCircleIDs = []string{}
	}
	_, err := u.db.ExecContext(ctx, `INSERT INTO users (`+userCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		out.UserID, out.Username, out.DisplayName, optStr(out.FullName), optStr(out.AvatarURL),
		msOf(out.DateOfBirth), optStr(out.Country), string(out.Sex), jsonList(out.InnerCircleIDs),
		out.StreakCount, out.LastPostDate, msOf(out.CreationTime))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q taken", model.ErrConflict, out.Username)
		}
		return nil, err
	}
	return &out, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var m model.User
	var fullName, avatar, country sql.NullString
	var sex, circle string
	var dobMS, createdMS int64
	err := row.Scan(&m.UserID, &m.Username, &m.DisplayName, &fullName, &avatar, &dobMS,
		&country, &sex, &circle, &m.StreakCount, &m.LastPostDate, &createdMS)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.FullName = strOpt(fullName)
	m.AvatarURL = strOpt(avatar)
	m.Country = strOpt(country)
	m.Sex = model.Sex(sex)
	m.InnerCircleIDs = listJSON(circle)
	m.DateOfBirth = timeOf(dobMS)
	m.CreationTime = timeOf(createdMS)
	return &m, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE user_id=$1`, userID))
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE username=$1`, username))
}

func (u *users) Update(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.InnerCircleIDs == nil {
		out.InnerCircleIDs = []string{}
	}
	res, err := u.db.ExecContext(ctx, `UPDATE users SET
        username=$1, display_name=$2, full_name=$3, avatar_url=$4, dob_ms=$5, country=$6, sex=$7, inner_circle=$8, streak_count=$9, last_post_date=$10
        WHERE user_id=$11`,
		out.Username, out.DisplayName, optStr(out.FullName), optStr(out.AvatarURL),
		msOf(out.DateOfBirth), optStr(out.Country), string(out.Sex), jsonList(out.InnerCircleIDs),
		out.StreakCount, out.LastPostDate, out.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q taken", model.ErrConflict, out.Username)
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return u.Get(ctx, out.UserID)
}

func (u *users) Delete(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Posts ---

type posts struct{ db *sql.DB }

const postCols = `post_id, author_id, author_name, photo_url, mood_id, creation_ms, reactions`

func (p *posts) Create(ctx context.Context, m *model.Post) (*model.Post, error) {
	out := *m
	if out.Reactions == nil {
		out.Reactions = []string{}
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO posts (`+postCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		out.PostID, out.AuthorID, out.AuthorName, out.PhotoURL, out.MoodID, msOf(out.CreationTime), jsonList(out.Reactions))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanPost(row interface{ Scan(...interface{}) error }) (*model.Post, error) {
	var m model.Post
	var reactions string
	var createdMS int64
	err := row.Scan(&m.PostID, &m.AuthorID, &m.AuthorName, &m.PhotoURL, &m.MoodID, &createdMS, &reactions)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.CreationTime = timeOf(createdMS)
	m.Reactions = listJSON(reactions)
	return &m, nil
}

func (p *posts) Get(ctx context.Context, postID string) (*model.Post, error) {
	return scanPost(p.db.QueryRowContext(ctx, `SELECT `+postCols+` FROM posts WHERE post_id=$1`, postID))
}

func (p *posts) List(ctx context.Context) ([]*model.Post, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+postCols+` FROM posts ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Post
	for rows.Next() {
		m, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *posts) UpdateReactions(ctx context.Context, postID string, reactions []string) (*model.Post, error) {
	if reactions == nil {
		reactions = []string{}
	}
	res, err := p.db.ExecContext(ctx, `UPDATE posts SET reactions=$1 WHERE post_id=$2`, jsonList(reactions), postID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, postID)
}

// --- Chats ---

type chats struct{ db *sql.DB }

func (c *chats) Create(ctx context.Context, m *model.SharedChat) (*model.SharedChat, error) {
	out := *m
	if out.Messages == nil {
		out.Messages = []model.ChatMessage{}
	}
	_, err := c.db.ExecContext(ctx, `INSERT INTO chats
        (chat_id, participant_a, participant_b, mood_id, creation_ms, expires_ms)
        VALUES ($1,$2,$3,$4,$5,$6)`,
		out.ChatID, out.Participants[0], out.Participants[1], out.MoodID, msOf(out.CreationTime), msOf(out.ExpiresAt))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *chats) Get(ctx context.Context, chatID string) (*model.SharedChat, error) {
	var m model.SharedChat
	var createdMS, expiresMS int64
	row := c.db.QueryRowContext(ctx, `SELECT chat_id, participant_a, participant_b, mood_id, creation_ms, expires_ms
        FROM chats WHERE chat_id=$1`, chatID)
	err := row.Scan(&m.ChatID, &m.Participants[0], &m.Participants[1], &m.MoodID, &createdMS, &expiresMS)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.CreationTime = timeOf(createdMS)
	m.ExpiresAt = timeOf(expiresMS)

	rows, err := c.db.QueryContext(ctx, `SELECT message_id, sender_id, body, ts_ms
        FROM chat_messages WHERE chat_id=$1 ORDER BY seq ASC`, chatID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	m.Messages = []model.ChatMessage{}
	for rows.Next() {
		var msg model.ChatMessage
		var tsMS int64
		if err := rows.Scan(&msg.MessageID, &msg.SenderID, &msg.Text, &tsMS); err != nil {
			return nil, err
		}
		msg.Timestamp = timeOf(tsMS)
		m.Messages = append(m.Messages, msg)
	}
	return &m, rows.Err()
}

func (c *chats) AppendMessage(ctx context.Context, chatID string, msg model.ChatMessage) (*model.SharedChat, error) {
	var exists int
	if err := c.db.QueryRowContext(ctx, `SELECT 1 FROM chats WHERE chat_id=$1`, chatID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	_, err := c.db.ExecContext(ctx, `INSERT INTO chat_messages (message_id, chat_id, sender_id, body, ts_ms)
        VALUES ($1,$2,$3,$4,$5)`, msg.MessageID, chatID, msg.SenderID, msg.Text, msOf(msg.Timestamp))
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, chatID)
}

func (c *chats) ListByParticipant(ctx context.Context, userID string) ([]*model.SharedChat, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT chat_id FROM chats
        WHERE participant_a=$1 OR participant_b=$1 ORDER BY creation_ms DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var out []*model.SharedChat
	for _, id := range ids {
		chat, err := c.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, chat)
	}
	return out, nil
}
