package id

import (
	"regexp"
	"testing"
)

func TestRandomGeneratorNewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(first) {
		t.Fatalf("NewID() = %q, want 32 lowercase hex characters", first)
	}

	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if first == second {
		t.Fatalf("NewID() returned %q twice, want distinct values", first)
	}
}
