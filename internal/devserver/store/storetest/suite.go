// Package storetest holds a compliance suite shared by every store.Store.
package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redema/records/internal/devserver/store"
)

// Run exercises a minimal compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	// Empty list is non-nil so it encodes as [].
	lst, err := s.List(ctx)
	if err != nil || lst == nil || len(lst) != 0 {
		t.Fatalf("List on empty store: lst=%v err=%v", lst, err)
	}

	// Create
	a, err := s.Create(ctx, store.Input{Name: "Ana", Age: 21, TrackID: json.RawMessage(`"cs-101"`)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 || a.Name != "Ana" || a.Age != 21 || string(a.TrackID) != `"cs-101"` {
		t.Fatalf("Create: unexpected record %+v", a)
	}
	b, err := s.Create(ctx, store.Input{Name: "Beto", Age: 30, TrackID: json.RawMessage(`7`)})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if b.ID <= a.ID {
		t.Fatalf("Create: ids not increasing: %d then %d", a.ID, b.ID)
	}
	c, err := s.Create(ctx, store.Input{Name: "Caro", Age: 40})
	if err != nil {
		t.Fatalf("Create without track id: %v", err)
	}
	if c.TrackID != nil {
		t.Fatalf("Create: expected nil track id, got %s", c.TrackID)
	}

	// Get
	got, err := s.Get(ctx, b.ID)
	if err != nil || got.Name != "Beto" || string(got.TrackID) != `7` {
		t.Fatalf("Get: got=%+v err=%v", got, err)
	}
	if _, err := s.Get(ctx, 999999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get missing: expected ErrNotFound, got %v", err)
	}

	// List
	lst, err = s.List(ctx)
	if err != nil || len(lst) != 3 {
		t.Fatalf("List: n=%d err=%v", len(lst), err)
	}
	for i := 1; i < len(lst); i++ {
		if lst[i-1].ID >= lst[i].ID {
			t.Fatalf("List: not ordered by id: %d before %d", lst[i-1].ID, lst[i].ID)
		}
	}

	// Update
	up, err := s.Update(ctx, a.ID, store.Input{Name: "Ana María", Age: 22, TrackID: json.RawMessage(`"cs-102"`)})
	if err != nil || up.ID != a.ID || up.Name != "Ana María" || up.Age != 22 {
		t.Fatalf("Update: got=%+v err=%v", up, err)
	}
	if got, err := s.Get(ctx, a.ID); err != nil || string(got.TrackID) != `"cs-102"` {
		t.Fatalf("Get after Update: got=%+v err=%v", got, err)
	}
	if _, err := s.Update(ctx, 999999, store.Input{Name: "x"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}

	// Delete
	if err := s.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get after Delete: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, b.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete twice: expected ErrNotFound, got %v", err)
	}
	if lst, err := s.List(ctx); err != nil || len(lst) != 2 {
		t.Fatalf("List after Delete: n=%d err=%v", len(lst), err)
	}
}
