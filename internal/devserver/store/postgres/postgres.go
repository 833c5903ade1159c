package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/redema/records/internal/devserver/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    id       BIGSERIAL PRIMARY KEY,
    name     TEXT    NOT NULL,
    age      INTEGER NOT NULL,
    track_id TEXT
)`

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
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

// New opens dsn and ensures the records table exists.
func New(ctx context.Context, dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	s, err := NewWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wires the store to an existing connection and ensures the schema.
func NewWithDB(ctx context.Context, db *sql.DB) (store.Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &pgStore{db: db}, nil
}

type pgStore struct{ db *sql.DB }

func (s *pgStore) Create(ctx context.Context, in store.Input) (*store.Record, error) {
	var id int64
	row := s.db.QueryRowContext(ctx, `
        INSERT INTO records (name, age, track_id)
        VALUES ($1,$2,$3)
        RETURNING id
    `, in.Name, in.Age, store.NullableTrackID(in.TrackID))
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	return &store.Record{ID: id, Name: in.Name, Age: in.Age, TrackID: normalized(in.TrackID)}, nil
}

func (s *pgStore) List(ctx context.Context) ([]*store.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, age, track_id FROM records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*store.Record, 0)
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *pgStore) Get(ctx context.Context, id int64) (*store.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, age, track_id FROM records WHERE id=$1`, id)
	r, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return r, err
}

func (s *pgStore) Update(ctx context.Context, id int64, in store.Input) (*store.Record, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE records SET name=$1, age=$2, track_id=$3 WHERE id=$4
    `, in.Name, in.Age, store.NullableTrackID(in.TrackID), id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, store.ErrNotFound
	}
	return &store.Record{ID: id, Name: in.Name, Age: in.Age, TrackID: normalized(in.TrackID)}, nil
}

func (s *pgStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id=$1`, id)
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

// Ping is a fast connectivity check used by the health endpoint.
func (s *pgStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *pgStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (*store.Record, error) {
	var (
		r     store.Record
		track sql.NullString
	)
	if err := sc.Scan(&r.ID, &r.Name, &r.Age, &track); err != nil {
		return nil, err
	}
	r.TrackID = store.TrackIDFromColumn(track.Valid, track.String)
	return &r, nil
}

func normalized(raw []byte) []byte {
	if v := store.NullableTrackID(raw); v != nil {
		return []byte(v.(string))
	}
	return nil
}
