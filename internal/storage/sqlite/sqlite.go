// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// The default DSN is an in-memory database, so sessions live only as long
// as the process. A file path may be given for local debugging; the schema
// is the same.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/storage"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is the subset of *sql.DB and *sql.Tx the store reads and writes through.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given DSN or database path.
// For file paths it creates the parent directories. Migrations run
// automatically.
func New(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	if isFilePath(dsn) {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database alive for the life of
	// the store and serializes writers.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session to the database.
func (s *SQLiteStore) CreateSession(ctx context.Context, state *models.SessionState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (id, screen, has_split, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		state.ID, string(state.Screen), state.Split != nil, state.CreatedAt, state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := writeChildren(ctx, tx, state); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID, including its cart and split state.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*models.SessionState, error) {
	return readSession(ctx, s.db, id)
}

// UpdateSession loads, mutates and rewrites a session in one transaction.
func (s *SQLiteStore) UpdateSession(ctx context.Context, id string, fn func(*models.SessionState) error) (*models.SessionState, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	state, err := readSession(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	state.ID = id

	_, err = tx.ExecContext(ctx,
		"UPDATE sessions SET screen = ?, has_split = ?, updated_at = ? WHERE id = ?",
		string(state.Screen), state.Split != nil, state.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	// Replace child rows
	for _, table := range []string{"cart_lines", "participants", "item_assignments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE session_id = ?", id); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := writeChildren(ctx, tx, state); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return state, nil
}

// DeleteSession deletes a session and, through cascading keys, its children.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}

// DeleteExpired deletes sessions last updated before the cutoff.
func (s *SQLiteStore) DeleteExpired(ctx context.Context, before int64) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE updated_at < ?", before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return int(n), nil
}

func readSession(ctx context.Context, q querier, id string) (*models.SessionState, error) {
	state := &models.SessionState{}
	var screen string
	var hasSplit bool
	err := q.QueryRowContext(ctx,
		"SELECT id, screen, has_split, created_at, updated_at FROM sessions WHERE id = ?",
		id,
	).Scan(&state.ID, &screen, &hasSplit, &state.CreatedAt, &state.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	state.Screen = models.Screen(screen)

	if state.Cart, err = readLines(ctx, q, id); err != nil {
		return nil, err
	}

	if hasSplit {
		state.Split = &models.SplitState{Assignments: make(map[string][]int)}
		if state.Split.ParticipantNames, err = readParticipants(ctx, q, id); err != nil {
			return nil, err
		}
		if err := readAssignments(ctx, q, id, state.Split.Assignments); err != nil {
			return nil, err
		}
	}

	return state, nil
}

func readLines(ctx context.Context, q querier, id string) ([]models.CartLine, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT entry_id, name, description, price, image_ref, category, quantity
		 FROM cart_lines WHERE session_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lines: %w", err)
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var l models.CartLine
		var category string
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.Price, &l.ImageRef, &category, &l.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		l.Category = models.Category(category)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}
	return lines, nil
}

func readParticipants(ctx context.Context, q querier, id string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT name FROM participants WHERE session_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return names, nil
}

func readAssignments(ctx context.Context, q querier, id string, into map[string][]int) error {
	rows, err := q.QueryContext(ctx,
		"SELECT line_id, participant FROM item_assignments WHERE session_id = ? ORDER BY line_id, seq",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to get item assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lineID string
		var participant int
		if err := rows.Scan(&lineID, &participant); err != nil {
			return fmt.Errorf("failed to scan assignment: %w", err)
		}
		into[lineID] = append(into[lineID], participant)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return nil
}

// writeChildren inserts the cart lines, participants and assignments of state.
func writeChildren(ctx context.Context, q querier, state *models.SessionState) error {
	for i, l := range state.Cart {
		_, err := q.ExecContext(ctx,
			`INSERT INTO cart_lines (session_id, position, entry_id, name, description, price, image_ref, category, quantity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			state.ID, i, l.ID, l.Name, l.Description, l.Price, l.ImageRef, string(l.Category), l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cart line: %w", err)
		}
	}

	if state.Split == nil {
		return nil
	}

	for i, name := range state.Split.ParticipantNames {
		_, err := q.ExecContext(ctx,
			"INSERT INTO participants (session_id, position, name) VALUES (?, ?, ?)",
			state.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for lineID, indices := range state.Split.Assignments {
		for seq, participant := range indices {
			_, err := q.ExecContext(ctx,
				"INSERT INTO item_assignments (session_id, line_id, seq, participant) VALUES (?, ?, ?, ?)",
				state.ID, lineID, seq, participant,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}
	return nil
}

func isFilePath(dsn string) bool {
	return dsn != MemoryDSN && !strings.HasPrefix(dsn, "file:")
}
