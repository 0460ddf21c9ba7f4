package mathx

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want float32 }{
		{-5, 0, 100, 0},
		{105, 0, 100, 100},
		{42, 0, 100, 42},
		{42, 100, 0, 42}, // swapped bounds
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if got := Clamp(7, 1, 5); got != 5 {
		t.Errorf("Clamp int = %d, want 5", got)
	}
}

func TestBetween(t *testing.T) {
	if !Between(3.3, 3.3, 4.2) {
		t.Error("lower bound should be inclusive")
	}
	if Between(4.3, 3.3, 4.2) {
		t.Error("4.3 is outside [3.3, 4.2]")
	}
	if !Between(4, 5, 3) {
		t.Error("swapped bounds should still match")
	}
}
