package random

import "testing"

func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("two seeds were both %d", a)
	}
}

func TestNewFixedSeedIsDeterministic(t *testing.T) {
	r1, s1, err := New(99)
	if err != nil {
		t.Fatal(err)
	}
	r2, _, _ := New(99)
	if s1 != 99 {
		t.Errorf("seed = %d, want 99", s1)
	}
	for i := 0; i < 10; i++ {
		if r1.Int63() != r2.Int63() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestNewZeroSeedDrawsOne(t *testing.T) {
	_, seed, err := New(0)
	if err != nil {
		t.Fatal(err)
	}
	if seed == 0 {
		t.Error("zero seed should be replaced")
	}
}
