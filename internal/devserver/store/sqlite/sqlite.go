package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/redema/records/internal/devserver/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT    NOT NULL,
    age      INTEGER NOT NULL,
    track_id TEXT
)`

// Open opens (or creates) a SQLite database at the given path and enables WAL journal mode.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single writer avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens path and ensures the records table exists.
func New(ctx context.Context, path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Create(ctx context.Context, in store.Input) (*store.Record, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO records (name, age, track_id) VALUES (?,?,?)`,
		in.Name, in.Age, store.NullableTrackID(in.TrackID))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *sqliteStore) List(ctx context.Context) ([]*store.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, age, track_id FROM records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*store.Record, 0)
	for rows.Next() {
		var (
			r     store.Record
			track sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Age, &track); err != nil {
			return nil, err
		}
		r.TrackID = store.TrackIDFromColumn(track.Valid, track.String)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Get(ctx context.Context, id int64) (*store.Record, error) {
	var (
		r     store.Record
		track sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, age, track_id FROM records WHERE id=?`, id).
		Scan(&r.ID, &r.Name, &r.Age, &track)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.TrackID = store.TrackIDFromColumn(track.Valid, track.String)
	return &r, nil
}

func (s *sqliteStore) Update(ctx context.Context, id int64, in store.Input) (*store.Record, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE records SET name=?, age=?, track_id=? WHERE id=?`,
		in.Name, in.Age, store.NullableTrackID(in.TrackID), id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *sqliteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *sqliteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *sqliteStore) Close() error { return s.db.Close() }
