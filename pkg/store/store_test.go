package store

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

func sampleDoc(name string) meshio.Document {
	return meshio.Document{
		Version: meshio.FormatVersion,
		Name:    name,
		Vertices: []geom.Vector{
			geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(0, 1, 0),
		},
		Polygons: [][]int{{0, 1, 2}},
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	// Missing name fails with MESH_NOT_FOUND.
	if _, err := s.Get(ctx, "absent"); !errors.Is(err, errors.ErrCodeMeshNotFound) {
		t.Errorf("Get absent: got %v, want MESH_NOT_FOUND", err)
	}

	// Round trip.
	if err := s.Put(ctx, "tri", sampleDoc("tri")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	doc, err := s.Get(ctx, "tri")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Name != "tri" || len(doc.Vertices) != 3 || len(doc.Polygons) != 1 {
		t.Errorf("round trip = %q/%d/%d, want tri/3/1", doc.Name, len(doc.Vertices), len(doc.Polygons))
	}

	// Put replaces.
	doc.Name = "tri-v2"
	if err := s.Put(ctx, "tri", doc); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	doc2, _ := s.Get(ctx, "tri")
	if doc2.Name != "tri-v2" {
		t.Errorf("replaced name = %q, want tri-v2", doc2.Name)
	}

	// List.
	if err := s.Put(ctx, "other", sampleDoc("other")); err != nil {
		t.Fatalf("Put other: %v", err)
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	slices.Sort(names)
	if !slices.Equal(names, []string{"other", "tri"}) {
		t.Errorf("List = %v, want [other tri]", names)
	}

	// Delete is idempotent.
	if err := s.Delete(ctx, "tri"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "tri"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := s.Get(ctx, "tri"); !errors.Is(err, errors.ErrCodeMeshNotFound) {
		t.Errorf("Get deleted: got %v, want MESH_NOT_FOUND", err)
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	for _, name := range []string{"", "a/b", "..", "a\\b", "a\x00b"} {
		if err := s.Put(ctx, name, sampleDoc(name)); !errors.Is(err, errors.ErrCodeInvalidName) {
			t.Errorf("Put %q: got %v, want INVALID_NAME", name, err)
		}
		if _, err := s.Get(ctx, name); !errors.Is(err, errors.ErrCodeInvalidName) {
			t.Errorf("Get %q: got %v, want INVALID_NAME", name, err)
		}
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Put(ctx, "tri", sampleDoc("tri")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := s.Get(ctx, "tri"); !errors.Is(err, errors.ErrCodeMeshNotFound) {
		t.Errorf("NullStore should not store data: %v", err)
	}
	if err := s.Delete(ctx, "tri"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	names, err := s.List(ctx)
	if err != nil || names != nil {
		t.Errorf("List = %v/%v, want nil/nil", names, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New(errors.ErrCodeStore, "backend down")
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != base.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	// Wrapping keeps the error code reachable.
	if !errors.Is(err, errors.ErrCodeStore) {
		t.Error("wrapped error should keep its code")
	}
	if IsRetryable(base) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	}); err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately.
	permanent := errors.New(errors.ErrCodeMeshNotFound, "gone")
	calls = 0
	if err := RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	}); err != permanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries.
	calls = 0
	if err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New(errors.ErrCodeStore, "flaky"))
		}
		return nil
	}); err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New(errors.ErrCodeStore, "flaky"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
