package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"recruitledger/internal/blob/core"
	"strings"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if store.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	info, err := store.Put(ctx, "snapshots/a.json", strings.NewReader(`{"a":1}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"people": "3"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 7 || info.ETag == "" || info.Metadata["people"] != "3" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := store.Put(ctx, "snapshots/a.json", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	got, rc, err := store.Get(ctx, "snapshots/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"a":1}` || got.ContentType != "application/json" {
		t.Fatalf("unexpected get %q %+v", body, got)
	}

	if _, err := store.Put(ctx, "other/b.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}
	list, err := store.List(ctx, "snapshots/")
	if err != nil || len(list) != 1 || list[0].Key != "snapshots/a.json" {
		t.Fatalf("list: %v %+v", err, list)
	}
	all, err := store.List(ctx, "")
	if err != nil || len(all) != 2 || all[0].Key != "other/b.json" {
		t.Fatalf("list all: %v %+v", err, all)
	}

	ok, err := store.Delete(ctx, "snapshots/a.json")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	ok, err = store.Delete(ctx, "snapshots/a.json")
	if err != nil || ok {
		t.Fatalf("second delete: %v %v", ok, err)
	}
	if _, err := store.Head(ctx, "snapshots/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := store.Get(ctx, "missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
}

func TestStoreRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "/abs", "../escape", "x.meta"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestNewCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "root")
	if _, err := New(root); err != nil {
		t.Fatalf("new: %v", err)
	}
	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		t.Fatalf("expected root dir created: %v", err)
	}
}
