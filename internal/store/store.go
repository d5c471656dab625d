// Package store keeps visitor metrics, contact messages and download counts in sqlite.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Visitor is a privacy-conscious page view: the IP is stored hashed.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Mailed    bool      `json:"mailed"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetCount is the download tally for one asset.
type AssetCount struct {
	Asset string `json:"asset"`
	Count int64  `json:"count"`
}

// CommandCount is how often a console command was run.
type CommandCount struct {
	Command string `json:"command"`
	Count   int64  `json:"count"`
}

// Stats is everything the admin dashboard shows.
type Stats struct {
	TotalVisitors    int64          `json:"total_visitors"`
	UniqueVisitors   int64          `json:"unique_visitors"`
	VisitorsToday    int64          `json:"visitors_today"`
	VisitorsThisWeek int64          `json:"visitors_this_week"`
	TotalMessages    int64          `json:"total_messages"`
	TotalDownloads   int64          `json:"total_downloads"`
	TopDownloads     []AssetCount   `json:"top_downloads"`
	TopCommands      []CommandCount `json:"top_commands"`
	RecentVisitors   []Visitor      `json:"recent_visitors"`
}

// Store wraps the sqlite handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors(timestamp);
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	body TEXT NOT NULL,
	mailed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS downloads (
	asset TEXT PRIMARY KEY,
	count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS commands (
	command TEXT PRIMARY KEY,
	count INTEGER NOT NULL DEFAULT 0
);`

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "applying schema")
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(ctx context.Context, v Visitor) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, v.Timestamp.UTC())
	return errors.Wrap(err, "recording visitor")
}

// RecentVisitors returns up to limit views, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying visitors")
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scanning visitor")
		}
		out = append(out, v)
	}
	return out, errors.Wrap(rows.Err(), "iterating visitors")
}

// CleanupVisitors deletes views older than olderThan and returns how many went.
func (s *Store) CleanupVisitors(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "cleaning up visitors")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// SaveMessage stores a contact message and returns its id.
func (s *Store) SaveMessage(ctx context.Context, m Message) (int64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, email, body, mailed, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Body, m.Mailed, m.CreatedAt.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "saving message")
	}
	return res.LastInsertId()
}

// MarkMailed flags a message as delivered by email.
func (s *Store) MarkMailed(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE messages SET mailed = 1 WHERE id = ?`, id)
	return errors.Wrap(err, "marking message mailed")
}

// ListMessages returns messages newest first.
func (s *Store) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, mailed, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying messages")
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Mailed, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning message")
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "iterating messages")
}

// ErrNotFound is returned when a row to modify does not exist.
var ErrNotFound = errors.New("not found")

// DeleteMessage removes one message.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "deleting message %d", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordDownload bumps the counter for asset.
func (s *Store) RecordDownload(ctx context.Context, asset string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (asset, count) VALUES (?, 1)
		ON CONFLICT(asset) DO UPDATE SET count = count + 1`, asset)
	return errors.Wrapf(err, "recording download of %s", asset)
}

// RecordCommand bumps the counter for a normalized console command.
func (s *Store) RecordCommand(ctx context.Context, command string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commands (command, count) VALUES (?, 1)
		ON CONFLICT(command) DO UPDATE SET count = count + 1`, command)
	return errors.Wrapf(err, "recording command %q", command)
}

// Stats gathers the dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM messages`, nil, &stats.TotalMessages},
		{`SELECT COALESCE(SUM(count), 0) FROM downloads`, nil, &stats.TotalDownloads},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, errors.Wrapf(err, "running %q", c.query)
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT asset, count FROM downloads ORDER BY count DESC, asset LIMIT 10`)
	if err != nil {
		return nil, errors.Wrap(err, "querying downloads")
	}
	for rows.Next() {
		var a AssetCount
		if err := rows.Scan(&a.Asset, &a.Count); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scanning download")
		}
		stats.TopDownloads = append(stats.TopDownloads, a)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT command, count FROM commands ORDER BY count DESC, command LIMIT 10`)
	if err != nil {
		return nil, errors.Wrap(err, "querying commands")
	}
	for rows.Next() {
		var c CommandCount
		if err := rows.Scan(&c.Command, &c.Count); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scanning command")
		}
		stats.TopCommands = append(stats.TopCommands, c)
	}
	rows.Close()

	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
