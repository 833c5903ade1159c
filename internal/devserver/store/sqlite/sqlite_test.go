package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/redema/records/internal/devserver/store"
	"github.com/redema/records/internal/devserver/store/storetest"
)

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New(context.Background(), filepath.Join(t.TempDir(), "records.db"))
		if err != nil {
			t.Fatalf("sqlite store: %v", err)
		}
		return s
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "records.db")

	s1, err := New(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, err := s1.Create(ctx, store.Input{Name: "Ana", Age: 21, TrackID: json.RawMessage(`"cs-101"`)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := New(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	got, err := s2.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Name != "Ana" || string(got.TrackID) != `"cs-101"` {
		t.Fatalf("unexpected record after reopen: %+v", got)
	}
}
