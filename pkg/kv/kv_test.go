package kv

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type cartSnapshot struct {
	Items []struct {
		ID  int64 `json:"id"`
		Qty int   `json:"qty"`
	} `json:"items"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, ok, err := store.Load(ctx, KeyCart); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Save(ctx, KeyCart, []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	raw, ok, err := store.Load(ctx, KeyCart)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if string(raw) != `{"items":[]}` {
		t.Fatalf("unexpected payload %s", raw)
	}

	if err := store.Delete(ctx, KeyCart); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Load(ctx, KeyCart); ok {
		t.Fatal("key should be gone after delete")
	}
}

func TestMemoryLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Save(ctx, KeyWishlist, []byte("abc")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	raw, _, _ := store.Load(ctx, KeyWishlist)
	raw[0] = 'x'

	again, _, _ := store.Load(ctx, KeyWishlist)
	if string(again) != "abc" {
		t.Fatalf("stored payload was mutated through the returned slice: %s", again)
	}
}

func TestHydrateMalformedSnapshotYieldsZeroState(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Save(ctx, KeyCart, []byte(`{"items": not-json`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var snap cartSnapshot
	if Hydrate(ctx, store, KeyCart, &snap) {
		t.Fatal("malformed snapshot must not hydrate")
	}
	if len(snap.Items) != 0 {
		t.Fatalf("dst should stay untouched, got %+v", snap)
	}
}

func TestHydrateMissingKey(t *testing.T) {
	var snap cartSnapshot
	if Hydrate(context.Background(), NewMemory(), KeyCart, &snap) {
		t.Fatal("missing key must not hydrate")
	}
}

func TestPersistHydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	src := cartSnapshot{}
	src.Items = append(src.Items, struct {
		ID  int64 `json:"id"`
		Qty int   `json:"qty"`
	}{ID: 101, Qty: 3})

	if err := Persist(ctx, store, KeyCart, src); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	var dst cartSnapshot
	if !Hydrate(ctx, store, KeyCart, &dst) {
		t.Fatal("expected hydrate to succeed")
	}
	if len(dst.Items) != 1 || dst.Items[0].ID != 101 || dst.Items[0].Qty != 3 {
		t.Fatalf("round trip mismatch: %+v", dst)
	}
}

func newSQLiteStore(t *testing.T) *SQL {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&Snapshot{}); err != nil {
		t.Fatalf("migrate snapshots: %v", err)
	}
	store, err := NewSQL(conn)
	if err != nil {
		t.Fatalf("new sql store: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return store
}

func TestSQLUpsertAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	if err := store.Save(ctx, KeyWishlist, []byte(`[1]`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, KeyWishlist, []byte(`[1,2]`)); err != nil {
		t.Fatalf("second save should upsert: %v", err)
	}

	raw, ok, err := store.Load(ctx, KeyWishlist)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if string(raw) != `[1,2]` {
		t.Fatalf("expected last write to win, got %s", raw)
	}

	if err := store.Delete(ctx, KeyWishlist); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Load(ctx, KeyWishlist); ok {
		t.Fatal("key should be gone after delete")
	}
}
