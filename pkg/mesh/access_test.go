package mesh_test

import (
	"testing"

	"github.com/matzehuels/halfmesh/pkg/errors"
)

func TestAliasing(t *testing.T) {
	t.Run("ReadersCoexist", func(t *testing.T) {
		m := quad(t)
		r1, err := m.Reader()
		if err != nil {
			t.Fatalf("first reader: %v", err)
		}
		defer r1.Close()
		r2, err := m.Reader()
		if err != nil {
			t.Fatalf("second reader: %v", err)
		}
		defer r2.Close()
	})

	t.Run("ReaderBlocksEditor", func(t *testing.T) {
		m := quad(t)
		r, _ := m.Reader()
		defer r.Close()
		if _, err := m.Editor(); !errors.Is(err, errors.ErrCodeAliasingViolation) {
			t.Errorf("got %v, want ALIASING_VIOLATION", err)
		}
	})

	t.Run("EditorBlocksReader", func(t *testing.T) {
		m := quad(t)
		e, _ := m.Editor()
		defer e.Close()
		if _, err := m.Reader(); !errors.Is(err, errors.ErrCodeAliasingViolation) {
			t.Errorf("got %v, want ALIASING_VIOLATION", err)
		}
	})

	t.Run("EditorBlocksEditor", func(t *testing.T) {
		m := quad(t)
		e, _ := m.Editor()
		defer e.Close()
		if _, err := m.Editor(); !errors.Is(err, errors.ErrCodeAliasingViolation) {
			t.Errorf("got %v, want ALIASING_VIOLATION", err)
		}
	})

	t.Run("CloseReleases", func(t *testing.T) {
		m := quad(t)
		e, _ := m.Editor()
		e.Close()
		e.Close() // idempotent
		r, err := m.Reader()
		if err != nil {
			t.Fatalf("reader after editor closed: %v", err)
		}
		r.Close()
		r.Close()
		if _, err := m.Editor(); err != nil {
			t.Fatalf("editor after reader closed: %v", err)
		}
	})
}

func TestClosedHandleViewsFail(t *testing.T) {
	m := quad(t)
	r, _ := m.Reader()
	f, err := r.Face(r.FaceKeys()[0])
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	r.Close()

	if _, err := f.Arity(); !errors.Is(err, errors.ErrCodeAliasingViolation) {
		t.Errorf("view after close: got %v, want ALIASING_VIOLATION", err)
	}
	if _, err := r.Face(f.Key()); !errors.Is(err, errors.ErrCodeAliasingViolation) {
		t.Errorf("minting after close: got %v, want ALIASING_VIOLATION", err)
	}
}
