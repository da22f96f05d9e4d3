package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// DefaultLimit is the number of entries Changes returns when the query
	// does not set one.
	DefaultLimit = 50

	// MaxLimit caps the number of entries a single Changes call returns.
	MaxLimit = 200

	defaultBusyTimeout = 5 * time.Second
)

// ErrClosed is returned by Store methods after Close.
var ErrClosed = errors.New("history store is closed")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS characteristic_history (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	accessory           TEXT NOT NULL,
	accessory_uuid      TEXT NOT NULL,
	aid                 INTEGER NOT NULL DEFAULT 0,
	service_type        TEXT NOT NULL,
	service_name        TEXT NOT NULL DEFAULT '',
	subtype             TEXT NOT NULL DEFAULT '',
	characteristic_type TEXT NOT NULL,
	characteristic_name TEXT NOT NULL DEFAULT '',
	iid                 INTEGER NOT NULL DEFAULT 0,
	old_value           TEXT,
	new_value           TEXT,
	conn_id             TEXT NOT NULL DEFAULT '',
	created_at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_accessory_time
	ON characteristic_history (accessory_uuid, created_at);
`

// Config controls how a Store opens its backing database.
type Config struct {
	// Path is the filesystem path of the SQLite database file. The parent
	// directory is created if missing.
	Path string

	// BusyTimeout is how long a statement waits on a locked database
	// before failing. Zero selects five seconds.
	BusyTimeout time.Duration

	// DisableWAL turns off write-ahead logging. WAL is enabled by default
	// so readers do not block the writer.
	DisableWAL bool
}

// Entry is one recorded characteristic change.
type Entry struct {
	ID                 int64
	Accessory          string
	AccessoryUUID      string
	AID                uint64
	ServiceType        string
	ServiceName        string
	Subtype            string
	CharacteristicType string
	CharacteristicName string
	IID                uint64
	OldValue           any
	NewValue           any
	ConnID             string
	CreatedAt          time.Time
}

// Query selects entries from the journal. Zero fields match everything.
type Query struct {
	AccessoryUUID      string
	CharacteristicType string
	ConnID             string
	Since              time.Time
	Until              time.Time

	// Limit caps the number of returned entries. Zero selects
	// DefaultLimit; values above MaxLimit are clamped.
	Limit int
}

// Store is a SQLite-backed journal of characteristic changes.
// All methods are safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the journal database at cfg.Path, creating the file and its
// schema when missing.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history: database path is required")
	}

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path, busy.Milliseconds())
	if !cfg.DisableWAL {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db, path: cfg.Path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record appends one change entry to the journal. A zero CreatedAt is
// replaced with the current time. Old and new values are stored as JSON.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if s.db == nil {
		return ErrClosed
	}
	if e.AccessoryUUID == "" {
		return fmt.Errorf("history: accessory UUID is required")
	}
	if e.CharacteristicType == "" {
		return fmt.Errorf("history: characteristic type is required")
	}

	oldJSON, err := marshalValue(e.OldValue)
	if err != nil {
		return fmt.Errorf("marshalling old value: %w", err)
	}
	newJSON, err := marshalValue(e.NewValue)
	if err != nil {
		return fmt.Errorf("marshalling new value: %w", err)
	}

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO characteristic_history
		 (accessory, accessory_uuid, aid, service_type, service_name, subtype,
		  characteristic_type, characteristic_name, iid, old_value, new_value,
		  conn_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Accessory,
		e.AccessoryUUID,
		e.AID,
		e.ServiceType,
		e.ServiceName,
		e.Subtype,
		e.CharacteristicType,
		e.CharacteristicName,
		e.IID,
		oldJSON,
		newJSON,
		e.ConnID,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	return nil
}

// Changes returns journal entries matching q, newest first.
func (s *Store) Changes(ctx context.Context, q Query) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var (
		where []string
		args  []any
	)
	if q.AccessoryUUID != "" {
		where = append(where, "accessory_uuid = ?")
		args = append(args, q.AccessoryUUID)
	}
	if q.CharacteristicType != "" {
		where = append(where, "characteristic_type = ?")
		args = append(args, q.CharacteristicType)
	}
	if q.ConnID != "" {
		where = append(where, "conn_id = ?")
		args = append(args, q.ConnID)
	}
	if !q.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, q.Since.UTC().Format(time.RFC3339))
	}
	if !q.Until.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, q.Until.UTC().Format(time.RFC3339))
	}

	query := `SELECT id, accessory, accessory_uuid, aid, service_type, service_name,
		subtype, characteristic_type, characteristic_name, iid, old_value,
		new_value, conn_id, created_at
		FROM characteristic_history`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			entry     Entry
			oldJSON   sql.NullString
			newJSON   sql.NullString
			createdAt string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Accessory,
			&entry.AccessoryUUID,
			&entry.AID,
			&entry.ServiceType,
			&entry.ServiceName,
			&entry.Subtype,
			&entry.CharacteristicType,
			&entry.CharacteristicName,
			&entry.IID,
			&oldJSON,
			&newJSON,
			&entry.ConnID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}

		if entry.OldValue, err = unmarshalValue(oldJSON); err != nil {
			return nil, fmt.Errorf("unmarshalling old value: %w", err)
		}
		if entry.NewValue, err = unmarshalValue(newJSON); err != nil {
			return nil, fmt.Errorf("unmarshalling new value: %w", err)
		}

		ts, err := parseTimestamp(createdAt)
		if err != nil {
			return nil, err
		}
		entry.CreatedAt = ts

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return entries, nil
}

// Prune deletes entries older than the given duration and reports how
// many rows were removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	if olderThan <= 0 {
		return 0, fmt.Errorf("history: olderThan must be positive")
	}

	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM characteristic_history WHERE created_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting history entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}

	return rowsAffected, nil
}

// Close closes the underlying database. Further calls return ErrClosed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("closing history database: %w", err)
	}
	return nil
}

func marshalValue(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalValue(ns sql.NullString) (any, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(ns.String), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// parseTimestamp parses a created_at column value. Older rows may lack a
// timezone suffix, so a naive layout is tried as fallback.
func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("history: created_at is empty")
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return ts, nil
	}

	fallback, fallbackErr := time.Parse("2006-01-02T15:04:05", value)
	if fallbackErr == nil {
		return fallback.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("parsing created_at: %w", err)
}
