package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		{"x", 5, 5},
		{" 42", 7, 7},
		{"999999999999999999999999", -1, -1},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestPositiveID(t *testing.T) {
	good := map[string]int{"1": 1, "24": 24, " 7 ": 7, "007": 7}
	for in, want := range good {
		if got, ok := PositiveID(in); !ok || got != want {
			t.Fatalf("PositiveID(%q) = %d,%v; want %d,true", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "0", "-1", "+3", "abc", "1.5", "99999999999999999999"} {
		if _, ok := PositiveID(in); ok {
			t.Fatalf("PositiveID(%q) should be rejected", in)
		}
	}
}
