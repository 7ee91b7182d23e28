// Package storage provides a SQLite-backed library of level packs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Pack files are validated before they are stored and kept as
// zstd-compressed YAML.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// ErrNotFound is returned when no stored pack matches a reference.
var ErrNotFound = errors.New("storage: pack not found")

// Store manages the SQLite database connection for the pack library.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	log *log.Logger
}

// PackEntry describes a stored pack without decoding it.
type PackEntry struct {
	ID        string // library id (uuid)
	PackID    string // id declared in the pack file
	Name      string
	Source    string // where the pack was imported from
	Levels    int
	Size      int // uncompressed YAML bytes
	Stored    int // compressed bytes
	CreatedAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Stores log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot create compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot create decompressor: %w", err)
	}

	store := &Store{db: db, enc: enc, dec: dec, log: log.New(io.Discard)}
	for _, opt := range opts {
		opt(store)
	}

	if err := store.migrate(); err != nil {
		store.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS packs (
			id TEXT PRIMARY KEY,
			pack_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			levels INTEGER NOT NULL DEFAULT 0,
			size INTEGER NOT NULL DEFAULT 0,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_packs_name ON packs(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.dec != nil {
		s.dec.Close()
	}
	if s.enc != nil {
		s.enc.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePack validates a YAML pack and stores it. A pack whose declared id
// is already stored is replaced in place and keeps its library id.
// Returns the library id.
func (s *Store) SavePack(source string, data []byte) (string, error) {
	p, err := levels.Parse(data)
	if err != nil {
		return "", fmt.Errorf("storage: invalid pack: %w", err)
	}
	blob := s.enc.EncodeAll(data, nil)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow("SELECT id FROM packs WHERE pack_id = ?", p.ID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = tx.Exec(
			`INSERT INTO packs (id, pack_id, name, source, levels, size, data)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, p.ID, p.Name, source, len(p.Levels), len(data), blob,
		)
	case err == nil:
		_, err = tx.Exec(
			`UPDATE packs SET name = ?, source = ?, levels = ?, size = ?, data = ?,
			 created_at = CURRENT_TIMESTAMP WHERE id = ?`,
			p.Name, source, len(p.Levels), len(data), blob, id,
		)
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot save pack %q: %w", p.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit: %w", err)
	}

	s.log.Info("pack stored", "id", id, "pack", p.ID, "levels", len(p.Levels), "bytes", len(blob))
	return id, nil
}

// LoadPack decodes and validates the pack whose library id or declared
// pack id is ref.
func (s *Store) LoadPack(ref string) (*levels.Pack, error) {
	var blob []byte
	err := s.db.QueryRow(
		"SELECT data FROM packs WHERE id = ? OR pack_id = ? LIMIT 1",
		ref, ref,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pack: %w", err)
	}

	data, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot decompress pack %s: %w", ref, err)
	}
	p, err := levels.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("storage: stored pack %s: %w", ref, err)
	}
	return &p, nil
}

// ListPacks returns every stored pack ordered by name.
func (s *Store) ListPacks() ([]PackEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, pack_id, name, source, levels, size, length(data), created_at
		 FROM packs
		 ORDER BY name, pack_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query packs: %w", err)
	}
	defer rows.Close()

	var entries []PackEntry
	for rows.Next() {
		var e PackEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PackID, &e.Name, &e.Source, &e.Levels, &e.Size, &e.Stored, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeletePack removes the pack whose library id or declared pack id is ref.
func (s *Store) DeletePack(ref string) error {
	res, err := s.db.Exec("DELETE FROM packs WHERE id = ? OR pack_id = ?", ref, ref)
	if err != nil {
		return fmt.Errorf("storage: cannot delete pack: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	s.log.Info("pack removed", "ref", ref)
	return nil
}

// Provider returns a levels.Provider reading the pack ref from the store.
func (s *Store) Provider(ref string) levels.Provider {
	return provider{store: s, ref: ref}
}

type provider struct {
	store *Store
	ref   string
}

func (p provider) Pack() (*levels.Pack, error) {
	return p.store.LoadPack(p.ref)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
