package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is a process-local Store. Ids start at 1 and are never reused.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1, rows: make(map[int64]Record)}
}

func (m *Memory) Create(ctx context.Context, in Input) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := Record{ID: m.nextID, Name: in.Name, Age: in.Age, TrackID: clone(in.TrackID)}
	m.rows[rec.ID] = rec
	m.nextID++
	return copyOf(rec), nil
}

func (m *Memory) List(ctx context.Context) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Record, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, copyOf(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id int64) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOf(r), nil
}

func (m *Memory) Update(ctx context.Context, id int64, in Input) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return nil, ErrNotFound
	}
	rec := Record{ID: id, Name: in.Name, Age: in.Age, TrackID: clone(in.TrackID)}
	m.rows[id] = rec
	return copyOf(rec), nil
}

func (m *Memory) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }

func copyOf(r Record) *Record {
	r.TrackID = clone(r.TrackID)
	return &r
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
