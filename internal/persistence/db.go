// Package persistence provides SQLite storage for saved birth profiles.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/engine"
)

// ErrNotFound is returned when a profile or meta key does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		birth_date TEXT NOT NULL,
		hour REAL NOT NULL,
		utc_offset REAL NOT NULL,
		latitude REAL,
		longitude REAL,
		notes TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Profile is a saved birth.
type Profile struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Birth     engine.Birth `json:"birth"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type profileRow struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Date      string          `db:"birth_date"`
	Hour      float64         `db:"hour"`
	UTCOffset float64         `db:"utc_offset"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
	Notes     string          `db:"notes"`
	CreatedAt int64           `db:"created_at"`
}

func (r profileRow) profile() Profile {
	p := Profile{
		ID:   r.ID,
		Name: r.Name,
		Birth: engine.Birth{
			Date:      r.Date,
			Hour:      r.Hour,
			UTCOffset: r.UTCOffset,
		},
		Notes:     r.Notes,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
	if r.Latitude.Valid {
		lat := r.Latitude.Float64
		p.Birth.Latitude = &lat
	}
	if r.Longitude.Valid {
		lon := r.Longitude.Float64
		p.Birth.Longitude = &lon
	}
	return p
}

func nullable(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

const profileColumns = "id, name, birth_date, hour, utc_offset, latitude, longitude, notes, created_at"

// SaveProfile validates and stores a new profile, assigning its ID and
// creation time.
func (db *DB) SaveProfile(name string, b engine.Birth, notes string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, errors.New("profile name is required")
	}
	if err := b.Validate(); err != nil {
		return Profile{}, err
	}

	row := profileRow{
		ID:        uuid.NewString(),
		Name:      name,
		Date:      b.Date,
		Hour:      b.Hour,
		UTCOffset: b.UTCOffset,
		Latitude:  nullable(b.Latitude),
		Longitude: nullable(b.Longitude),
		Notes:     notes,
		CreatedAt: time.Now().UnixNano(),
	}
	_, err := db.conn.NamedExec(`INSERT INTO profiles (`+profileColumns+`)
		VALUES (:id, :name, :birth_date, :hour, :utc_offset, :latitude, :longitude, :notes, :created_at)`, row)
	if err != nil {
		return Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	slog.Debug("profile saved", "id", row.ID, "name", row.Name)
	return row.profile(), nil
}

// GetProfile loads a profile by ID.
func (db *DB) GetProfile(id string) (Profile, error) {
	var row profileRow
	err := db.conn.Get(&row, "SELECT "+profileColumns+" FROM profiles WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return row.profile(), nil
}

// ListProfiles returns every profile, newest first.
func (db *DB) ListProfiles() ([]Profile, error) {
	var rows []profileRow
	if err := db.conn.Select(&rows, "SELECT "+profileColumns+" FROM profiles ORDER BY created_at DESC, id"); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]Profile, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.profile())
	}
	return out, nil
}

// DeleteProfile removes a profile.
func (db *DB) DeleteProfile(id string) error {
	res, err := db.conn.Exec("DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountProfiles returns the number of saved profiles.
func (db *DB) CountProfiles() (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM profiles")
	return n, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %s: %w", key, ErrNotFound)
	}
	return value, err
}
