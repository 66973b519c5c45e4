package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	content := "workbook bytes"
	if err := store.Upload(ctx, "exports/job-1.xlsx", strings.NewReader(content), int64(len(content)), "application/octet-stream"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := store.Exists(ctx, "exports/job-1.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected uploaded artifact to exist")
	}

	reader, err := store.Download(ctx, "exports/job-1.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != content {
		t.Errorf("expected %q, got %q", content, string(data))
	}
}

func TestLocalStorage_Delete(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	if err := store.Upload(ctx, "a.xlsx", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "a.xlsx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := store.Exists(ctx, "a.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected artifact gone after delete")
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, "a.xlsx"); err != nil {
		t.Errorf("unexpected error deleting missing key: %v", err)
	}
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	keys := []string{
		"../outside.txt",
		"exports/../../outside.txt",
	}
	for _, key := range keys {
		if err := store.Upload(ctx, key, strings.NewReader("x"), 1, ""); err == nil {
			t.Errorf("expected key %q to be rejected", key)
		}
		if _, err := store.Download(ctx, key); err == nil {
			t.Errorf("expected key %q to be rejected on download", key)
		}
	}
}

func TestLocalStorage_MissingKey(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	if _, err := store.Download(ctx, "missing.xlsx"); err == nil {
		t.Error("expected error for missing artifact")
	}

	exists, err := store.Exists(ctx, "missing.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected missing artifact to not exist")
	}
}
