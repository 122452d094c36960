package sqlite

import "database/sql"

// Timestamps are stored as epoch milliseconds so values survive the JSON
// round trip byte-for-byte; list fields (inner circle, reactions) are JSON
// arrays in TEXT columns.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id        TEXT PRIMARY KEY,
    username       TEXT NOT NULL UNIQUE,
    display_name   TEXT NOT NULL,
    full_name      TEXT,
    avatar_url     TEXT,
    dob_ms         INTEGER NOT NULL,
    country        TEXT,
    sex            TEXT NOT NULL DEFAULT 'unspecified',
    inner_circle   TEXT NOT NULL DEFAULT '[]',
    streak_count   INTEGER NOT NULL DEFAULT 0,
    last_post_date TEXT NOT NULL DEFAULT '',
    creation_ms    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
    seq         INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id     TEXT NOT NULL UNIQUE,
    author_id   TEXT NOT NULL,
    author_name TEXT NOT NULL,
    photo_url   TEXT NOT NULL,
    mood_id     TEXT NOT NULL,
    creation_ms INTEGER NOT NULL,
    reactions   TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
CREATE INDEX IF NOT EXISTS idx_posts_mood ON posts(mood_id, creation_ms);

CREATE TABLE IF NOT EXISTS chats (
    chat_id       TEXT PRIMARY KEY,
    participant_a TEXT NOT NULL,
    participant_b TEXT NOT NULL,
    mood_id       TEXT NOT NULL,
    creation_ms   INTEGER NOT NULL,
    expires_ms    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_messages (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id TEXT NOT NULL UNIQUE,
    chat_id    TEXT NOT NULL REFERENCES chats(chat_id),
    sender_id  TEXT NOT NULL,
    body       TEXT NOT NULL,
    ts_ms      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_chat ON chat_messages(chat_id, seq);
`

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
