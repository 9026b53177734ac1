package entropy

import "testing"

func TestReproducibleFromSeed(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
	}
}

func TestChanceSaturation(t *testing.T) {
	s := NewSource(1)
	if s.Chance(0) {
		t.Error("Chance(0) returned true")
	}
	if !s.Chance(1) {
		t.Error("Chance(1) returned false")
	}
	if s.Chance(-0.5) {
		t.Error("Chance(-0.5) returned true")
	}
}

func TestBetweenBounds(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 1000; i++ {
		got := s.Between(3, 9)
		if got < 3 || got > 9 {
			t.Fatalf("Between(3, 9) = %d, out of range", got)
		}
	}
	if got := s.Between(5, 5); got != 5 {
		t.Errorf("Between(5, 5) = %d, want 5", got)
	}
	if got := s.Between(8, 2); got != 8 {
		t.Errorf("Between(8, 2) = %d, want lo", got)
	}
}

func TestPickEmpty(t *testing.T) {
	s := NewSource(3)
	if got := Pick(s, []string(nil)); got != "" {
		t.Errorf("Pick of empty slice = %q, want zero value", got)
	}
}
