// Package store provides SQLite-based persistence for path searches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/katalvlaran/scissors/gridgraph"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusNoPath = "no_path"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run represents one recorded search.
type Run struct {
	ID            int64
	Checksum      string // Checksum of the field searched
	Source        string // Image path, empty for in-memory fields
	Height, Width int
	Start, End    gridgraph.Cell
	MaxCost       int64 // 0 = no cap
	WallThreshold int64 // 0 = no walls
	Status        string
	Cost          int64
	Path          []gridgraph.Cell
	CreatedAt     time.Time
}

// Checksum returns a hex SHA-256 over the dimensions and values of g.
// Equal fields always share a checksum.
func Checksum(g *gridgraph.GridGraph) string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(g.Height()))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.Width()))
	h.Write(buf[:])
	for i := 0; i < g.Len(); i++ {
		binary.LittleEndian.PutUint64(buf[:], uint64(g.Value(g.CellAt(i))))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("store: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		// Create parent directories
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: cannot open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration failed: %w", err)
	}

	return s, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			checksum TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			height INTEGER NOT NULL,
			width INTEGER NOT NULL,
			start_row INTEGER NOT NULL,
			start_col INTEGER NOT NULL,
			end_row INTEGER NOT NULL,
			end_col INTEGER NOT NULL,
			max_cost INTEGER NOT NULL DEFAULT 0,
			wall_threshold INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			cost INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			path TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_checksum ON runs(checksum);
		CREATE INDEX IF NOT EXISTS idx_runs_query ON runs(checksum, start_row, start_col, end_row, end_col);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a search. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	encoded, err := encodePath(r.Path)
	if err != nil {
		return 0, fmt.Errorf("store: cannot encode path: %w", err)
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (checksum, source, height, width, start_row, start_col, end_row, end_col,
			max_cost, wall_threshold, status, cost, steps, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Checksum, r.Source, r.Height, r.Width, r.Start.Row, r.Start.Col, r.End.Row, r.End.Col,
		r.MaxCost, r.WallThreshold, r.Status, r.Cost, len(r.Path), encoded,
	)
	if err != nil {
		return 0, fmt.Errorf("store: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectRun = `SELECT id, checksum, source, height, width, start_row, start_col, end_row, end_col,
	max_cost, wall_threshold, status, cost, path, created_at FROM runs`

// Lookup returns the most recent run for the same field, endpoints and
// search limits. ok is false when no such run exists.
func (s *Store) Lookup(checksum string, start, end gridgraph.Cell, maxCost, wall int64) (Run, bool, error) {
	row := s.db.QueryRow(selectRun+`
		WHERE checksum = ? AND start_row = ? AND start_col = ? AND end_row = ? AND end_col = ?
		  AND max_cost = ? AND wall_threshold = ?
		ORDER BY id DESC LIMIT 1`,
		checksum, start.Row, start.Col, end.Row, end.Col, maxCost, wall,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("store: cannot look up run: %w", err)
	}
	return r, true, nil
}

// RecentRuns retrieves the latest N runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(selectRun+` ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: cannot query runs: %w", err)
	}
	return collect(rows)
}

// RunsForImage retrieves the latest N runs over a field checksum, newest first.
func (s *Store) RunsForImage(checksum string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(selectRun+` WHERE checksum = ? ORDER BY id DESC LIMIT ?`, checksum, limit)
	if err != nil {
		return nil, fmt.Errorf("store: cannot query runs: %w", err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("store: cannot scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: error iterating runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var encoded string
	var createdAt any
	err := sc.Scan(&r.ID, &r.Checksum, &r.Source, &r.Height, &r.Width,
		&r.Start.Row, &r.Start.Col, &r.End.Row, &r.End.Col,
		&r.MaxCost, &r.WallThreshold, &r.Status, &r.Cost, &encoded, &createdAt)
	if err != nil {
		return Run{}, err
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	if r.Path, err = decodePath(encoded); err != nil {
		return Run{}, err
	}
	return r, nil
}

// encodePath stores a path as a JSON array of [row, col] pairs.
func encodePath(path []gridgraph.Cell) (string, error) {
	pairs := make([][2]int, len(path))
	for i, c := range path {
		pairs[i] = [2]int{c.Row, c.Col}
	}
	b, err := json.Marshal(pairs)
	return string(b), err
}

func decodePath(s string) ([]gridgraph.Cell, error) {
	var pairs [][2]int
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	path := make([]gridgraph.Cell, len(pairs))
	for i, p := range pairs {
		path[i] = gridgraph.Cell{Row: p[0], Col: p[1]}
	}
	return path, nil
}
