// Package sessionlog keeps a small sqlite audit of room membership so
// operators can see who joined which room and when, after the rooms
// themselves have been garbage collected.
package sessionlog

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id TEXT NOT NULL,
	peer_id TEXT NOT NULL,
	role TEXT NOT NULL,
	joined_unix INTEGER NOT NULL,
	left_unix INTEGER
);
CREATE INDEX IF NOT EXISTS idx_sessions_room ON sessions(room_id);
`

type Log struct {
	db *sql.DB
}

type Entry struct {
	RoomID     string `json:"room_id"`
	PeerID     string `json:"peer_id"`
	Role       string `json:"role"`
	JoinedUnix int64  `json:"joined_unix"`
	LeftUnix   *int64 `json:"left_unix,omitempty"`
}

func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Log{db: db}, nil
}

func (l *Log) RecordJoin(roomID, peerID, role string) error {
	_, err := l.db.Exec(
		"INSERT INTO sessions (room_id, peer_id, role, joined_unix) VALUES (?, ?, ?, ?)",
		roomID, peerID, role, time.Now().Unix(),
	)
	return err
}

func (l *Log) RecordLeave(roomID, peerID string) error {
	_, err := l.db.Exec(
		"UPDATE sessions SET left_unix = ? WHERE room_id = ? AND peer_id = ? AND left_unix IS NULL",
		time.Now().Unix(), roomID, peerID,
	)
	return err
}

// Recent returns the newest entries, most recent join first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	rows, err := l.db.Query(
		"SELECT room_id, peer_id, role, joined_unix, left_unix FROM sessions ORDER BY joined_unix DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var left sql.NullInt64
		if err := rows.Scan(&e.RoomID, &e.PeerID, &e.Role, &e.JoinedUnix, &left); err != nil {
			return nil, err
		}
		if left.Valid {
			e.LeftUnix = &left.Int64
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (l *Log) Close() error {
	return l.db.Close()
}
