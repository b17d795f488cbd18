package domain

import (
	"errors"
	"testing"
)

func TestSourceIndex(t *testing.T) {
	idx, err := SourceIndex("Solar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != SourceSolar {
		t.Errorf("expected %d, got %d", SourceSolar, idx)
	}

	idx, err = SourceIndex("Total")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Errorf("Total must be index 0, got %d", idx)
	}
}

func TestSourceIndex_Unknown(t *testing.T) {
	_, err := SourceIndex("Fusion")
	if !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}

	// Lookup is exact, not case-insensitive.
	_, err = SourceIndex("solar")
	if !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource for lowercase name, got %v", err)
	}
}

func TestMustSourceIndex_PanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on index mismatch")
		}
	}()
	MustSourceIndex("Solar", SourceWind)
}

func TestMustSourceIndex_PanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unknown name")
		}
	}()
	MustSourceIndex("Fusion", 0)
}

func TestSourceNames_AllResolve(t *testing.T) {
	for i, name := range SourceNames {
		idx, err := SourceIndex(name)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if idx != i {
			t.Errorf("%q resolved to %d, want %d", name, idx, i)
		}
	}
}
