package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rushteam/digkit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !core.IsNotFound(err) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}

	if err := s.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, []byte("v1")) {
		t.Errorf("Get(k1) = %q, want v1", got)
	}

	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k1"); !core.IsNotFound(err) {
		t.Errorf("deleted key should be NOT_FOUND, got %v", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if err := s.Set(ctx, "k1", []byte("v1"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := s.Get(ctx, "k1"); err != nil {
		t.Fatalf("fresh key should be readable, got %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := s.Get(ctx, "k1"); !core.IsNotFound(err) {
		t.Errorf("expired key should be NOT_FOUND, got %v", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	kvs := map[string][]byte{
		"k1": []byte("v1"),
		"k2": []byte("v2"),
	}
	if err := s.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := s.BatchGet(ctx, []string{"k1", "k2", "k3"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("BatchGet returned %d entries, want 2", len(got))
	}
	if !bytes.Equal(got["k2"], []byte("v2")) {
		t.Errorf("BatchGet[k2] = %q, want v2", got["k2"])
	}
}
