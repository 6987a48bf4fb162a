package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := map[string]struct{ def, want int }{
		"":                         {10, 10},
		"42":                       {0, 42},
		" 3 ":                      {1, 3},
		"-13":                      {1, -13},
		"0012":                     {99, 12},
		"2.5":                      {5, 5},
		"page":                     {5, 5},
		"999999999999999999999999": {-1, -1},
	}
	for in, tc := range cases {
		if got := AtoiDefault(in, tc.def); got != tc.want {
			t.Errorf("AtoiDefault(%q, %d) = %d; want %d", in, tc.def, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{11, 1, 10, 10},
		{-3, -5, -1, -3},
		{7, 9, 3, 9},
	}
	for _, tc := range cases {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d; want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
	if got := Clamp(2.5, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp float = %v; want 1", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 0, 0},
		{-4, 10, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d; want %d", tc.total, tc.size, got, tc.want)
		}
	}
}
